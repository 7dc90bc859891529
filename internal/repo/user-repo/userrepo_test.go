package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	return New(s)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotZero(t, first.Created)
}

func TestFindByEmailCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "Alice@Example.COM"})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateFieldOverwritesRaw(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	found, err := repo.UpdateField(ctx, created.ID, "name", "Alicia")
	require.NoError(t, err)
	assert.True(t, found)

	user, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alicia", user.Name)

	found, err = repo.UpdateField(ctx, "missing", "name", "X")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateFieldSurvivesRepoReload(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	repo := New(s)
	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = repo.UpdateField(ctx, created.ID, "adminLevel", "support")
	require.NoError(t, err)

	// A fresh repository over the same directory must see the change.
	reopened := New(s)
	user, err := reopened.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "support", user.AdminLevel)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	found, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)

	user, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, user)

	found, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
