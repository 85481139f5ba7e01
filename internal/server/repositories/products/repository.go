package products

import (
	"context"

	"github.com/pzubov/products-api/internal/server/models"
)

// Repository is the product persistence contract. GetByID, Update and Delete
// return common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, sort string, order string, limit int, offset int) ([]*models.Product, error)
}
