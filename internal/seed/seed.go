// Package seed populates a fresh database with the baseline admin account
// and a small product catalog. All operations are idempotent so the command
// can run at any point against any environment.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/dbx"
	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
)

// AdminParams describes the administrator account to ensure.
type AdminParams struct {
	Email    string
	Name     string
	Password string
}

var sampleProducts = []models.Product{
	{Title: "Laptop Pro", Description: "High-performance laptop for professionals", Quantity: 15, Price: 1299.99},
	{Title: "Wireless Mouse", Description: "Ergonomic wireless mouse with 5-year battery", Quantity: 50, Price: 29.99},
	{Title: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader", Quantity: 30, Price: 49.99},
	{Title: "Mechanical Keyboard", Description: "RGB mechanical keyboard with cherry MX switches", Quantity: 25, Price: 149.99},
	{Title: "Monitor 4K", Description: "27 inch 4K UHD monitor with color accuracy", Quantity: 10, Price: 599.99},
}

type Seeder struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func New(db dbx.DBTX, m repomanager.RepositoryManager, logger logging.Logger) *Seeder {
	return &Seeder{db: db, repomanager: m, logger: logger.With("module", "seed")}
}

// Run ensures the admin user and the sample products exist.
func (s *Seeder) Run(ctx context.Context, admin AdminParams) error {
	if err := s.ensureAdmin(ctx, admin); err != nil {
		return err
	}
	return s.ensureProducts(ctx)
}

func (s *Seeder) ensureAdmin(ctx context.Context, admin AdminParams) error {
	if len(admin.Password) < 8 {
		return common.ErrWeakPassword
	}

	repo := s.repomanager.Users(s.db)
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info(ctx, "Admin user already exists", "email", email)
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("admin lookup error: %w", err)
	}

	digest, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("password hash error: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           admin.Name,
		PasswordDigest: digest,
		Role:           models.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("admin create error: %w", err)
	}

	s.logger.Info(ctx, "Admin user created", "email", email)
	return nil
}

func (s *Seeder) ensureProducts(ctx context.Context) error {
	repo := s.repomanager.Products(s.db)

	existing, err := repo.List(ctx, "title", "asc", 100, 0)
	if err != nil {
		return fmt.Errorf("product list error: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		have[p.Title] = struct{}{}
	}

	created := 0
	for _, sample := range sampleProducts {
		if _, ok := have[sample.Title]; ok {
			continue
		}

		now := time.Now()
		p := sample
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now

		if _, err := repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("product create error: %w", err)
		}
		created++
	}

	s.logger.Info(ctx, "Sample products ensured", "created", created)
	return nil
}
