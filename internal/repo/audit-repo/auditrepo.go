package auditrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/store"
)

// Repository keeps the admin action trail as an append-only JSON array. It is
// written on every admin operation and read back only to render history.
type Repository struct {
	store *store.Store
}

func New(s *store.Store) *Repository {
	return &Repository{
		store: s,
	}
}

func (repo *Repository) Append(ctx context.Context, entry *domain.AdminLogEntry) error {
	err := repo.store.Update(store.AdminLogsCollection, func() error {
		entries := make([]domain.AdminLogEntry, 0)
		if err := repo.store.Load(store.AdminLogsCollection, &entries); err != nil {
			return err
		}
		entries = append(entries, *entry)
		return repo.store.Save(store.AdminLogsCollection, entries)
	})
	if err != nil {
		zap.L().Error("can't append admin log entry", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) List(ctx context.Context) ([]domain.AdminLogEntry, error) {
	entries := make([]domain.AdminLogEntry, 0)
	err := repo.store.Update(store.AdminLogsCollection, func() error {
		return repo.store.Load(store.AdminLogsCollection, &entries)
	})
	if err != nil {
		zap.L().Error("can't load admin log", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
