package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/models"
)

// userGetter is the slice of the users repository the guard needs.
type userGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Guard resolves the Authorization header into a user. Any failure along the
// way (missing header, bad token, deleted account) collapses into
// common.ErrAuthRequired so responses do not leak which check tripped.
type Guard struct {
	codec *auth.Codec
	users userGetter
}

func NewGuard(codec *auth.Codec, users userGetter) *Guard {
	return &Guard{codec: codec, users: users}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Authenticate verifies the bearer token and loads the current user.
func (g *Guard) Authenticate(r *http.Request) (*models.User, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, common.ErrAuthRequired
	}

	claims, err := g.codec.Verify(token)
	if err != nil {
		return nil, common.ErrAuthRequired
	}

	user, err := g.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, common.ErrAuthRequired
	}

	return user, nil
}

// RequireRole authenticates the request and additionally demands the given
// role. The role check uses the user row, not the token claim, so a demoted
// account loses access as soon as its row changes.
func (g *Guard) RequireRole(r *http.Request, role string) (*models.User, error) {
	user, err := g.Authenticate(r)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, common.ErrForbidden
	}
	return user, nil
}
