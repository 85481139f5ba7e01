package repomanager

import (
	"context"
	"database/sql"

	"github.com/pzubov/products-api/internal/dbx"
	"github.com/pzubov/products-api/internal/server/repositories/products"
	"github.com/pzubov/products-api/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
}
