package userservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
)

type Repo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) (map[string]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateField(ctx context.Context, id, field string, value any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AuditService interface {
	Record(ctx context.Context, action, adminID, details, ip string)
}

type Service struct {
	repo  Repo
	audit AuditService
}

func New(repo Repo, audit AuditService) *Service {
	return &Service{
		repo:  repo,
		audit: audit,
	}
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrRestrictedField = errors.New("field cannot be modified")
	ErrProtectedAdmin  = errors.New("admin accounts can only be deleted by their owner")
)

// Fields that identify the record or its provenance; everything else may be
// overwritten by admin tooling, with no type checking against the field.
var restrictedFields = map[string]struct{}{
	"id":        {},
	"created":   {},
	"createdBy": {},
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) (map[string]domain.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Create persists an admin-created user; any role and starting balance is
// allowed. Email uniqueness is case-insensitive and enforced here only.
func (s *Service) Create(ctx context.Context, user *domain.User, actingAdminID, ip string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		zap.L().Error("can't check email uniqueness", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("email already registered", zap.String("email", user.Email))
		return nil, ErrDuplicateEmail
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Status == "" {
		user.Status = domain.StatusActive
	}
	user.CreatedBy = actingAdminID
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}
	s.audit.Record(ctx, "create_user", actingAdminID,
		fmt.Sprintf("created %s (%s) role=%s", created.Name, created.ID, created.Role), ip)
	return created, nil
}

func (s *Service) UpdateField(ctx context.Context, id, field string, value any, actingAdminID, ip string) error {
	if _, restricted := restrictedFields[field]; restricted {
		return ErrRestrictedField
	}
	found, err := s.repo.UpdateField(ctx, id, field, value)
	if err != nil {
		zap.L().Error("failed to update user field", zap.Error(err))
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	s.audit.Record(ctx, "update_user", actingAdminID,
		fmt.Sprintf("set %s on user %s", field, id), ip)
	return nil
}

// Delete removes a user. Admin records are protected: only the acting admin
// may delete their own admin account.
func (s *Service) Delete(ctx context.Context, id, actingAdminID, ip string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to find user for deletion", zap.Error(err))
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.Role == domain.RoleAdmin && target.ID != actingAdminID {
		return ErrProtectedAdmin
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		zap.L().Error("failed to delete user", zap.Error(err))
		return err
	}
	s.audit.Record(ctx, "delete_user", actingAdminID,
		fmt.Sprintf("deleted %s (%s)", target.Name, id), ip)
	return nil
}
