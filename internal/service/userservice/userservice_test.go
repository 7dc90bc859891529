package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhalinin/payactiv/internal/domain"
	auditrepo "github.com/mkhalinin/payactiv/internal/repo/audit-repo"
	userrepo "github.com/mkhalinin/payactiv/internal/repo/user-repo"
	"github.com/mkhalinin/payactiv/internal/service/auditservice"
	"github.com/mkhalinin/payactiv/internal/store"
)

func newTestService(t *testing.T) (*Service, *userrepo.Repository) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	repo := userrepo.New(s)
	audit := auditservice.New(auditrepo.New(s))
	return New(repo, audit), repo
}

func TestCreateRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"}, "admin1", "127.0.0.1")
	require.NoError(t, err)

	_, err = service.Create(ctx, &domain.User{Name: "Other", Email: "ALICE@EXAMPLE.COM"}, "admin1", "127.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateDefaults(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"}, "admin1", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, "admin1", created.CreatedBy)
}

func TestUpdateField(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		field         string
		value         any
		expectedError error
	}{
		{name: "id is immutable", field: "id", value: "other", expectedError: ErrRestrictedField},
		{name: "created is immutable", field: "created", value: 1, expectedError: ErrRestrictedField},
		{name: "createdBy is immutable", field: "createdBy", value: "x", expectedError: ErrRestrictedField},
		{name: "name is mutable", field: "name", value: "X"},
		{name: "status is mutable", field: "status", value: "suspended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.UpdateField(ctx, created.ID, tt.field, tt.value, "admin1", "127.0.0.1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	user, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", user.Name)
	assert.Equal(t, "suspended", user.Status)

	err = service.UpdateField(ctx, "missing", "name", "X", "admin1", "127.0.0.1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteProtectsOtherAdmins(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	admin, err := repo.Create(ctx, &domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	user, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	// Another admin cannot delete an admin account.
	err = service.Delete(ctx, admin.ID, "someone-else", "127.0.0.1")
	assert.ErrorIs(t, err, ErrProtectedAdmin)

	// Plain users can be deleted by any admin.
	err = service.Delete(ctx, user.ID, admin.ID, "127.0.0.1")
	assert.NoError(t, err)

	// Admins may delete themselves.
	err = service.Delete(ctx, admin.ID, admin.ID, "127.0.0.1")
	assert.NoError(t, err)

	err = service.Delete(ctx, "missing", admin.ID, "127.0.0.1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGet(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	user, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = service.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
