package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/service/userservice"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock.go -package=ledgerservice

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (bool, error)
}

type TransactionRepo interface {
	Append(ctx context.Context, tx *domain.Transaction) error
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	CompletePendingFee(ctx context.Context, userID, method string) (bool, error)
}

type AuditService interface {
	Record(ctx context.Context, action, adminID, details, ip string)
}

// Service pairs balance mutation with transaction-record append. The stored
// balance is the source of truth, mutated in lockstep with the append; it is
// never derived from the transaction log. The two writes hit separate
// collection files and are not atomic: a crash in between leaves them
// inconsistent, which is an accepted limitation.
type Service struct {
	userRepo UserRepo
	txRepo   TransactionRepo
	audit    AuditService
}

func New(userRepo UserRepo, txRepo TransactionRepo, audit AuditService) *Service {
	return &Service{
		userRepo: userRepo,
		txRepo:   txRepo,
		audit:    audit,
	}
}

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ActivationFeeRate is applied to the balance held at submission time.
const ActivationFeeRate = 0.02

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func (s *Service) Credit(ctx context.Context, targetID string, amount float64, note, actingAdminID, ip string) (float64, error) {
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		zap.L().Error("failed to get user for credit", zap.Error(err))
		return 0, err
	}
	if user == nil {
		return 0, userservice.ErrUserNotFound
	}

	user.Balance += amount
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		zap.L().Error("failed to update user balance", zap.Error(err))
		return 0, err
	}

	tx := &domain.Transaction{
		Type:      domain.TxAdminCredit,
		From:      domain.AdminParty,
		To:        user.ID,
		FromName:  domain.AdminParty,
		ToName:    user.Name,
		Amount:    amount,
		Note:      note,
		Timestamp: time.Now().UnixMilli(),
		Status:    domain.TxCompleted,
	}
	if err := s.txRepo.Append(ctx, tx); err != nil {
		zap.L().Error("failed to append credit transaction", zap.Error(err))
		return 0, err
	}

	s.audit.Record(ctx, "credit_balance", actingAdminID,
		fmt.Sprintf("credited %.2f to %s (%s)", amount, user.Name, user.ID), ip)
	return user.Balance, nil
}

func (s *Service) Debit(ctx context.Context, targetID string, amount float64, note, actingAdminID, ip string) (float64, error) {
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		zap.L().Error("failed to get user for debit", zap.Error(err))
		return 0, err
	}
	if user == nil {
		return 0, userservice.ErrUserNotFound
	}
	if user.Balance < amount {
		return 0, ErrInsufficientBalance
	}

	user.Balance -= amount
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		zap.L().Error("failed to update user balance", zap.Error(err))
		return 0, err
	}

	tx := &domain.Transaction{
		Type:      domain.TxAdminDebit,
		From:      user.ID,
		To:        domain.AdminParty,
		FromName:  user.Name,
		ToName:    domain.AdminParty,
		Amount:    amount,
		Note:      note,
		Timestamp: time.Now().UnixMilli(),
		Status:    domain.TxCompleted,
	}
	if err := s.txRepo.Append(ctx, tx); err != nil {
		zap.L().Error("failed to append debit transaction", zap.Error(err))
		return 0, err
	}

	s.audit.Record(ctx, "debit_balance", actingAdminID,
		fmt.Sprintf("debited %.2f from %s (%s)", amount, user.Name, user.ID), ip)
	return user.Balance, nil
}

// RecordActivationFee appends an activation_fee entry without touching the
// balance. The fee is 2% of the balance held right now, not a pricing-table
// product.
func (s *Service) RecordActivationFee(ctx context.Context, userID, method, status string) (float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user for activation fee", zap.Error(err))
		return 0, err
	}
	if user == nil {
		return 0, userservice.ErrUserNotFound
	}

	fee := user.Balance * ActivationFeeRate
	tx := &domain.Transaction{
		Type:          domain.TxActivationFee,
		From:          user.ID,
		To:            domain.SystemParty,
		FromName:      user.Name,
		ToName:        domain.SystemParty,
		Amount:        fee,
		Note:          "account activation fee",
		Timestamp:     time.Now().UnixMilli(),
		Status:        status,
		PaymentMethod: method,
	}
	if err := s.txRepo.Append(ctx, tx); err != nil {
		zap.L().Error("failed to append activation fee", zap.Error(err))
		return 0, err
	}
	return fee, nil
}

// SettleActivationFee completes the just-recorded fee for USDT and card
// payments and activates the account immediately. Gift-card fees stay pending
// until the submission is approved.
func (s *Service) SettleActivationFee(ctx context.Context, userID, method string) error {
	if method == domain.MethodGiftCard {
		return nil
	}
	if _, err := s.txRepo.CompletePendingFee(ctx, userID, method); err != nil {
		zap.L().Error("failed to complete activation fee", zap.Error(err))
		return err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user for activation", zap.Error(err))
		return err
	}
	if user == nil {
		return userservice.ErrUserNotFound
	}
	user.Activated = true
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		zap.L().Error("failed to activate user", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) Transactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return txs, nil
}

func (s *Service) AllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return txs, nil
}
