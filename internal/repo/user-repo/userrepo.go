package userrepo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/store"
)

// Repository keeps the user directory as a JSON object keyed by id.
type Repository struct {
	store *store.Store
}

func New(s *store.Store) *Repository {
	return &Repository{
		store: s,
	}
}

func (repo *Repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var found *domain.User
	err := repo.store.Update(store.UsersCollection, func() error {
		users := make(map[string]domain.User)
		if err := repo.store.Load(store.UsersCollection, &users); err != nil {
			return err
		}
		if u, ok := users[id]; ok {
			found = &u
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return found, nil
}

// FindByEmail scans case-insensitively; first match wins.
func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var found *domain.User
	err := repo.store.Update(store.UsersCollection, func() error {
		users := make(map[string]domain.User)
		if err := repo.store.Load(store.UsersCollection, &users); err != nil {
			return err
		}
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				u := u
				found = &u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return found, nil
}

func (repo *Repository) GetAll(ctx context.Context) (map[string]domain.User, error) {
	users := make(map[string]domain.User)
	err := repo.store.Update(store.UsersCollection, func() error {
		return repo.store.Load(store.UsersCollection, &users)
	})
	if err != nil {
		zap.L().Error("can't load users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Create assigns a fresh timestamp-derived id and persists the record.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := repo.store.Update(store.UsersCollection, func() error {
		users := make(map[string]domain.User)
		if err := repo.store.Load(store.UsersCollection, &users); err != nil {
			return err
		}
		ts := time.Now().UnixMilli()
		id := strconv.FormatInt(ts, 10)
		for {
			if _, taken := users[id]; !taken {
				break
			}
			ts++
			id = strconv.FormatInt(ts, 10)
		}
		user.ID = id
		user.Created = time.Now().UnixMilli()
		users[id] = *user
		return repo.store.Save(store.UsersCollection, users)
	})
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Update overwrites the whole record. Returns false when the id is unknown.
func (repo *Repository) Update(ctx context.Context, user *domain.User) (bool, error) {
	var found bool
	err := repo.store.Update(store.UsersCollection, func() error {
		users := make(map[string]domain.User)
		if err := repo.store.Load(store.UsersCollection, &users); err != nil {
			return err
		}
		if _, ok := users[user.ID]; !ok {
			return nil
		}
		found = true
		users[user.ID] = *user
		return repo.store.Save(store.UsersCollection, users)
	})
	if err != nil {
		zap.L().Error("can't update user", zap.Error(err))
		return false, err
	}
	return found, nil
}

// UpdateField overwrites one field on the raw document, no type checking
// against the field's semantic type. Restricted-field rules live in the
// service layer.
func (repo *Repository) UpdateField(ctx context.Context, id, field string, value any) (bool, error) {
	var found bool
	err := repo.store.Update(store.UsersCollection, func() error {
		raw := make(map[string]map[string]any)
		if err := repo.store.Load(store.UsersCollection, &raw); err != nil {
			return err
		}
		rec, ok := raw[id]
		if !ok {
			return nil
		}
		found = true
		rec[field] = value
		raw[id] = rec
		return repo.store.Save(store.UsersCollection, raw)
	})
	if err != nil {
		zap.L().Error("can't update user field", zap.Error(err))
		return false, err
	}
	return found, nil
}

func (repo *Repository) Delete(ctx context.Context, id string) (bool, error) {
	var found bool
	err := repo.store.Update(store.UsersCollection, func() error {
		users := make(map[string]domain.User)
		if err := repo.store.Load(store.UsersCollection, &users); err != nil {
			return err
		}
		if _, ok := users[id]; !ok {
			return nil
		}
		found = true
		delete(users, id)
		return repo.store.Save(store.UsersCollection, users)
	})
	if err != nil {
		zap.L().Error("can't delete user", zap.Error(err))
		return false, err
	}
	return found, nil
}
