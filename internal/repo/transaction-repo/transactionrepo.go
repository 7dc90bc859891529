package transactionrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/store"
)

// Repository keeps the ledger entries as an append-only JSON array. The one
// sanctioned in-place mutation is the pending→completed status flip on
// activation fees.
type Repository struct {
	store *store.Store
}

func New(s *store.Store) *Repository {
	return &Repository{
		store: s,
	}
}

func (repo *Repository) Append(ctx context.Context, tx *domain.Transaction) error {
	err := repo.store.Update(store.TransactionsCollection, func() error {
		txs := make([]domain.Transaction, 0)
		if err := repo.store.Load(store.TransactionsCollection, &txs); err != nil {
			return err
		}
		txs = append(txs, *tx)
		return repo.store.Save(store.TransactionsCollection, txs)
	})
	if err != nil {
		zap.L().Error("can't append transaction", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Transaction, 0)
	for _, tx := range all {
		if tx.From == userID || tx.To == userID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (repo *Repository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0)
	err := repo.store.Update(store.TransactionsCollection, func() error {
		return repo.store.Load(store.TransactionsCollection, &txs)
	})
	if err != nil {
		zap.L().Error("can't load transactions", zap.Error(err))
		return nil, err
	}
	return txs, nil
}

// CompletePendingFee flips the single matching pending activation-fee entry
// for the user to completed. Returns false when no entry matches.
func (repo *Repository) CompletePendingFee(ctx context.Context, userID, method string) (bool, error) {
	var found bool
	err := repo.store.Update(store.TransactionsCollection, func() error {
		txs := make([]domain.Transaction, 0)
		if err := repo.store.Load(store.TransactionsCollection, &txs); err != nil {
			return err
		}
		for i := range txs {
			tx := &txs[i]
			if tx.Type == domain.TxActivationFee &&
				tx.From == userID &&
				tx.PaymentMethod == method &&
				tx.Status == domain.TxPending {
				tx.Status = domain.TxCompleted
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		return repo.store.Save(store.TransactionsCollection, txs)
	})
	if err != nil {
		zap.L().Error("can't complete pending fee", zap.Error(err))
		return false, err
	}
	return found, nil
}
