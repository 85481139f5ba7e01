package users

import (
	"context"
	"time"

	"github.com/pzubov/products-api/internal/server/models"
)

// Repository is the user persistence contract. GetBy* methods return
// common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, id string, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, token string) (int64, error)
	UpdatePasswordDigest(ctx context.Context, id string, digest string) error
}
