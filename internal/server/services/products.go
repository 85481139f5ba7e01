package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
)

// maxPageSize caps the page size of product listings.
const maxPageSize = 100

// validSortColumns whitelists the columns List may order by. The values are
// interpolated into SQL, so nothing outside this set ever reaches the repository.
var validSortColumns = map[string]struct{}{
	"title":      {},
	"price":      {},
	"created_at": {},
}

// ListProductsParams carries pagination and sorting options for List.
type ListProductsParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// ListProductsResult is a page of products plus pagination metadata.
type ListProductsResult struct {
	Items      []*models.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreateProductParams uses pointers for numeric fields to distinguish absent
// values from zero.
type CreateProductParams struct {
	Title       string
	Description string
	Quantity    *int
	Price       *float64
}

// UpdateProductParams applies partial updates; nil fields keep current values.
type UpdateProductParams struct {
	Title       *string
	Description *string
	Quantity    *int
	Price       *float64
}

// ProductService provides the product catalog operations.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// List returns one page of products ordered by a whitelisted column.
func (s *ProductService) List(ctx context.Context, params ListProductsParams) (*ListProductsResult, error) {
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Page < 1 || params.Limit < 1 {
		return nil, common.NewValidationError("Invalid page or limit")
	}
	if _, ok := validSortColumns[params.Sort]; !ok {
		return nil, common.NewValidationError("Invalid sort parameter")
	}
	if params.Order != "asc" && params.Order != "desc" {
		return nil, common.NewValidationError("Invalid order parameter")
	}

	repo := s.repomanager.Products(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	offset := (params.Page - 1) * params.Limit
	items, err := repo.List(ctx, params.Sort, params.Order, params.Limit, offset)
	if err != nil {
		return nil, common.ErrorInternal
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single product or common.ErrorNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

// Create validates the input and stores a new product.
func (s *ProductService) Create(ctx context.Context, params CreateProductParams) (*models.Product, error) {
	if len(params.Title) < 1 || len(params.Title) > 100 {
		return nil, common.NewValidationError("Title is required and must be between 1-100 characters")
	}
	if params.Quantity == nil {
		return nil, common.NewValidationError("Quantity is required")
	}
	if params.Price == nil {
		return nil, common.NewValidationError("Price is required")
	}
	if *params.Quantity < 0 {
		return nil, common.NewValidationError("Quantity must be a non-negative integer")
	}
	if *params.Price <= 0 {
		return nil, common.NewValidationError("Price must be positive")
	}
	if len(params.Description) > 500 {
		return nil, common.NewValidationError("Description must not exceed 500 characters")
	}

	now := time.Now()
	product := &models.Product{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Quantity:    *params.Quantity,
		Price:       *params.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.repomanager.Products(s.db).Create(ctx, product); err != nil {
		return nil, common.ErrorInternal
	}

	return product, nil
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(ctx context.Context, id string, params UpdateProductParams) (*models.Product, error) {
	if params.Title != nil && (len(*params.Title) < 1 || len(*params.Title) > 100) {
		return nil, common.NewValidationError("Title must be between 1-100 characters")
	}
	if params.Quantity != nil && *params.Quantity < 0 {
		return nil, common.NewValidationError("Quantity must be non-negative")
	}
	if params.Price != nil && *params.Price <= 0 {
		return nil, common.NewValidationError("Price must be positive")
	}
	if params.Description != nil && len(*params.Description) > 500 {
		return nil, common.NewValidationError("Description must not exceed 500 characters")
	}

	repo := s.repomanager.Products(s.db)

	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		product.Title = *params.Title
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Quantity != nil {
		product.Quantity = *params.Quantity
	}
	if params.Price != nil {
		product.Price = *params.Price
	}

	if err := repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product and returns the deleted row.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	repo := s.repomanager.Products(s.db)

	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return product, nil
}
