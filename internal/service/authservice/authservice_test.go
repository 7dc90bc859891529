package authservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhalinin/payactiv/internal/domain"
	userrepo "github.com/mkhalinin/payactiv/internal/repo/user-repo"
	"github.com/mkhalinin/payactiv/internal/service/userservice"
	"github.com/mkhalinin/payactiv/internal/store"
	"github.com/mkhalinin/payactiv/pkg/auth"
)

func newTestService(t *testing.T) *Service {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	return New(userrepo.New(s), &auth.HashService{}, &auth.JWTService{})
}

func TestRegister(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Alice", "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, 0.0, user.Balance)
	assert.False(t, user.Activated)
	// Stored credential is a hash, never the raw password.
	assert.NotEqual(t, "secret-password", user.Password)

	_, err = service.Register(ctx, "Clone", "ALICE@example.com", "other-password")
	assert.ErrorIs(t, err, userservice.ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, "Alice", "alice@example.com", "secret-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{name: "Valid credentials", email: "alice@example.com", password: "secret-password"},
		{name: "Wrong password", email: "alice@example.com", password: "nope", expectedError: ErrInvalidCredentials},
		{name: "Unknown email", email: "nobody@example.com", password: "secret-password", expectedError: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(ctx, tt.email, tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken("1001", domain.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := (&auth.JWTService{}).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1001", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}
