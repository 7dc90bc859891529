package submissionservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/service/userservice"
)

type SubmissionRepo interface {
	AddGiftCard(ctx context.Context, sub *domain.Submission) error
	AddPayment(ctx context.Context, sub *domain.Submission) error
	ListGiftCards(ctx context.Context) ([]domain.Submission, error)
	ListPayments(ctx context.Context) ([]domain.Submission, error)
	FindGiftCard(ctx context.Context, key string) (*domain.Submission, error)
	UpdateGiftCard(ctx context.Context, key string, sub *domain.Submission) (bool, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (bool, error)
}

type TransactionRepo interface {
	CompletePendingFee(ctx context.Context, userID, method string) (bool, error)
}

type Ledger interface {
	RecordActivationFee(ctx context.Context, userID, method, status string) (float64, error)
	SettleActivationFee(ctx context.Context, userID, method string) error
}

type AuditService interface {
	Record(ctx context.Context, action, adminID, details, ip string)
}

type Service struct {
	subRepo  SubmissionRepo
	userRepo UserRepo
	txRepo   TransactionRepo
	ledger   Ledger
	audit    AuditService
}

func New(subRepo SubmissionRepo, userRepo UserRepo, txRepo TransactionRepo, ledger Ledger, audit AuditService) *Service {
	return &Service{
		subRepo:  subRepo,
		userRepo: userRepo,
		txRepo:   txRepo,
		ledger:   ledger,
		audit:    audit,
	}
}

const (
	// StatusPending awaits admin disposition.
	StatusPending = "pending"
	// StatusApproved is terminal, the account is activated.
	StatusApproved = "approved"
	// StatusRejected is terminal, nothing else changes.
	StatusRejected = "rejected"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyResolved    = errors.New("submission already resolved")
)

// SubmitGiftCard records the fee as pending and queues the submission for
// admin review. images holds stored evidence filenames, never paths.
func (s *Service) SubmitGiftCard(ctx context.Context, userID string, images []string) (*domain.Submission, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userservice.ErrUserNotFound
	}

	fee, err := s.ledger.RecordActivationFee(ctx, userID, domain.MethodGiftCard, domain.TxPending)
	if err != nil {
		zap.L().Error("can't record activation fee", zap.Error(err))
		return nil, err
	}

	sub := &domain.Submission{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		Method:        domain.MethodGiftCard,
		ActivationFee: fee,
		Images:        images,
		Status:        StatusPending,
		Timestamp:     time.Now().UnixMilli(),
	}
	if err := s.subRepo.AddGiftCard(ctx, sub); err != nil {
		zap.L().Error("can't save gift card submission", zap.Error(err))
		return nil, err
	}

	zap.L().Info("gift card submission created",
		zap.String("user_id", userID), zap.Float64("fee", fee))
	return sub, nil
}

// SubmitUSDT settles immediately: the fee completes and the account activates
// without an approval step.
func (s *Service) SubmitUSDT(ctx context.Context, userID, txid string) (*domain.Submission, error) {
	return s.submitInstant(ctx, userID, domain.MethodUSDT, func(sub *domain.Submission) {
		sub.TxID = txid
	})
}

// SubmitCard settles immediately, same as USDT. Only a masked card number is
// kept on the record.
func (s *Service) SubmitCard(ctx context.Context, userID, cardNumber string) (*domain.Submission, error) {
	return s.submitInstant(ctx, userID, domain.MethodCard, func(sub *domain.Submission) {
		sub.CardNumber = maskCard(cardNumber)
	})
}

func (s *Service) submitInstant(ctx context.Context, userID, method string, fill func(*domain.Submission)) (*domain.Submission, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userservice.ErrUserNotFound
	}

	fee, err := s.ledger.RecordActivationFee(ctx, userID, method, domain.TxPending)
	if err != nil {
		zap.L().Error("can't record activation fee", zap.Error(err))
		return nil, err
	}
	if err := s.ledger.SettleActivationFee(ctx, userID, method); err != nil {
		zap.L().Error("can't settle activation fee", zap.Error(err))
		return nil, err
	}

	sub := &domain.Submission{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		Method:        method,
		ActivationFee: fee,
		Status:        StatusApproved,
		Timestamp:     time.Now().UnixMilli(),
	}
	fill(sub)
	if err := s.subRepo.AddPayment(ctx, sub); err != nil {
		zap.L().Error("can't save payment submission", zap.Error(err))
		return nil, err
	}

	zap.L().Info("activation payment settled",
		zap.String("user_id", userID), zap.String("method", method))
	return sub, nil
}

// Approve resolves a pending gift-card submission: marks it approved,
// activates the user, and completes the matching pending fee entry. The
// lookup key matches the submission timestamp or the owning user id.
func (s *Service) Approve(ctx context.Context, key, actingAdminID, ip string) error {
	sub, err := s.subRepo.FindGiftCard(ctx, key)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubmissionNotFound
	}
	if sub.Status != StatusPending {
		return ErrAlreadyResolved
	}

	sub.Status = StatusApproved
	sub.ApprovedBy = actingAdminID
	sub.ApprovedAt = time.Now().UnixMilli()
	if _, err := s.subRepo.UpdateGiftCard(ctx, key, sub); err != nil {
		zap.L().Error("can't update submission", zap.Error(err))
		return err
	}

	user, err := s.userRepo.FindByID(ctx, sub.UserID)
	if err != nil {
		return err
	}
	if user != nil {
		user.Activated = true
		if _, err := s.userRepo.Update(ctx, user); err != nil {
			zap.L().Error("can't activate user", zap.Error(err))
			return err
		}
	}

	if _, err := s.txRepo.CompletePendingFee(ctx, sub.UserID, domain.MethodGiftCard); err != nil {
		zap.L().Error("can't complete fee transaction", zap.Error(err))
		return err
	}

	s.audit.Record(ctx, "approve_submission", actingAdminID,
		fmt.Sprintf("approved gift card submission %d for user %s", sub.Timestamp, sub.UserID), ip)
	return nil
}

// Reject resolves a pending submission without touching the user's activation
// flag or the fee transaction.
func (s *Service) Reject(ctx context.Context, key, reason, actingAdminID, ip string) error {
	sub, err := s.subRepo.FindGiftCard(ctx, key)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubmissionNotFound
	}
	if sub.Status != StatusPending {
		return ErrAlreadyResolved
	}

	sub.Status = StatusRejected
	sub.RejectedBy = actingAdminID
	sub.RejectedAt = time.Now().UnixMilli()
	sub.RejectReason = reason
	if _, err := s.subRepo.UpdateGiftCard(ctx, key, sub); err != nil {
		zap.L().Error("can't update submission", zap.Error(err))
		return err
	}

	s.audit.Record(ctx, "reject_submission", actingAdminID,
		fmt.Sprintf("rejected gift card submission %d for user %s: %s", sub.Timestamp, sub.UserID, reason), ip)
	return nil
}

func (s *Service) ListGiftCards(ctx context.Context) ([]domain.Submission, error) {
	subs, err := s.subRepo.ListGiftCards(ctx)
	if err != nil {
		zap.L().Error("failed to fetch gift card submissions", zap.Error(err))
		return nil, err
	}
	return subs, nil
}

func (s *Service) ListPayments(ctx context.Context) ([]domain.Submission, error) {
	subs, err := s.subRepo.ListPayments(ctx)
	if err != nil {
		zap.L().Error("failed to fetch payment submissions", zap.Error(err))
		return nil, err
	}
	return subs, nil
}

func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
