package submissionrepo

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/store"
)

// Repository keeps two JSON arrays: gift-card submissions, which wait for
// admin disposition, and payment submissions (USDT/card), which settle
// immediately and are kept for history only.
type Repository struct {
	store *store.Store
}

func New(s *store.Store) *Repository {
	return &Repository{
		store: s,
	}
}

func (repo *Repository) AddGiftCard(ctx context.Context, sub *domain.Submission) error {
	return repo.append(store.GiftCardsCollection, sub)
}

func (repo *Repository) AddPayment(ctx context.Context, sub *domain.Submission) error {
	return repo.append(store.PaymentsCollection, sub)
}

func (repo *Repository) append(collection string, sub *domain.Submission) error {
	err := repo.store.Update(collection, func() error {
		subs := make([]domain.Submission, 0)
		if err := repo.store.Load(collection, &subs); err != nil {
			return err
		}
		subs = append(subs, *sub)
		return repo.store.Save(collection, subs)
	})
	if err != nil {
		zap.L().Error("can't append submission", zap.String("collection", collection), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) ListGiftCards(ctx context.Context) ([]domain.Submission, error) {
	return repo.list(store.GiftCardsCollection)
}

func (repo *Repository) ListPayments(ctx context.Context) ([]domain.Submission, error) {
	return repo.list(store.PaymentsCollection)
}

func (repo *Repository) list(collection string) ([]domain.Submission, error) {
	subs := make([]domain.Submission, 0)
	err := repo.store.Update(collection, func() error {
		return repo.store.Load(collection, &subs)
	})
	if err != nil {
		zap.L().Error("can't load submissions", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	return subs, nil
}

// FindGiftCard matches key against the submission timestamp or the owning
// user id; first match wins. Both paths are kept for compatibility with
// existing clients.
func (repo *Repository) FindGiftCard(ctx context.Context, key string) (*domain.Submission, error) {
	subs, err := repo.ListGiftCards(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if matches(&sub, key) {
			sub := sub
			return &sub, nil
		}
	}
	return nil, nil
}

// UpdateGiftCard replaces the first submission matching key in one guarded
// read-modify-write cycle. Returns false when no submission matches.
func (repo *Repository) UpdateGiftCard(ctx context.Context, key string, sub *domain.Submission) (bool, error) {
	var found bool
	err := repo.store.Update(store.GiftCardsCollection, func() error {
		subs := make([]domain.Submission, 0)
		if err := repo.store.Load(store.GiftCardsCollection, &subs); err != nil {
			return err
		}
		for i := range subs {
			if matches(&subs[i], key) {
				subs[i] = *sub
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		return repo.store.Save(store.GiftCardsCollection, subs)
	})
	if err != nil {
		zap.L().Error("can't update submission", zap.Error(err))
		return false, err
	}
	return found, nil
}

func matches(sub *domain.Submission, key string) bool {
	return strconv.FormatInt(sub.Timestamp, 10) == key || sub.UserID == key
}
