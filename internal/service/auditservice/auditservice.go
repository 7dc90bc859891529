package auditservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
)

type Repo interface {
	Append(ctx context.Context, entry *domain.AdminLogEntry) error
	List(ctx context.Context) ([]domain.AdminLogEntry, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Record appends an audit entry. Best-effort: a failed write is logged and
// never surfaced, the caller's primary operation must not be blocked by the
// audit trail.
func (s *Service) Record(ctx context.Context, action, adminID, details, ip string) {
	entry := &domain.AdminLogEntry{
		Action:    action,
		AdminID:   adminID,
		Details:   details,
		Timestamp: time.Now().UnixMilli(),
		IP:        ip,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		zap.L().Error("can't record admin action",
			zap.String("action", action), zap.Error(err))
	}
}

func (s *Service) History(ctx context.Context) ([]domain.AdminLogEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to fetch admin log", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
