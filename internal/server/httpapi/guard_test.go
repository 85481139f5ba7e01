package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/models"
)

func guardFixture(t *testing.T, user *models.User) (*Guard, *auth.Codec) {
	t.Helper()
	codec := auth.NewCodec("guard-secret", time.Hour)
	users := &fakeUserGetter{getFn: func(ctx context.Context, id string) (*models.User, error) {
		if user != nil && user.ID == id {
			return user, nil
		}
		return nil, common.ErrorNotFound
	}}
	return NewGuard(codec, users), codec
}

func TestGuard_Authenticate(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "alice@example.com", Role: models.RoleUser}
	guard, codec := guardFixture(t, user)

	token, err := codec.Issue(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got, err := guard.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestGuard_AuthenticateFailures(t *testing.T) {
	user := &models.User{ID: "u-1", Role: models.RoleUser}
	guard, codec := guardFixture(t, user)

	validToken, err := codec.Issue(user.ID, user.Role)
	require.NoError(t, err)

	otherCodec := auth.NewCodec("other-secret", time.Hour)
	forged, err := otherCodec.Issue(user.ID, user.Role)
	require.NoError(t, err)

	ghostToken, err := codec.Issue("ghost", models.RoleUser)
	require.NoError(t, err)

	expiredCodec := auth.NewCodec("guard-secret", -time.Minute)
	expired, err := expiredCodec.Issue(user.ID, user.Role)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + validToken},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + forged},
		{"expired token", "Bearer " + expired},
		{"user no longer exists", "Bearer " + ghostToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			_, err := guard.Authenticate(req)
			assert.ErrorIs(t, err, common.ErrAuthRequired)
		})
	}
}

func TestGuard_RequireRole(t *testing.T) {
	admin := &models.User{ID: "a-1", Role: models.RoleAdmin}
	guard, codec := guardFixture(t, admin)

	token, err := codec.Issue(admin.ID, admin.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got, err := guard.RequireRole(req, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestGuard_RequireRole_RoleFromRowNotToken(t *testing.T) {
	// The token claims admin but the stored row says user: the row wins.
	user := &models.User{ID: "u-1", Role: models.RoleUser}
	guard, codec := guardFixture(t, user)

	token, err := codec.Issue(user.ID, models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, err = guard.RequireRole(req, models.RoleAdmin)
	assert.ErrorIs(t, err, common.ErrForbidden)
}
