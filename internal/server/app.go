// Package server initializes and runs the products-api server.
// It wires the database, repositories, services and the HTTP endpoint,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/config"
	"github.com/pzubov/products-api/internal/server/httpapi"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
	"github.com/pzubov/products-api/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	codec := auth.NewCodec(c.SecretKey, c.TokenValidityDuration)

	authService := services.NewAuthService(db, rm, codec)
	resetStore := services.NewResetTokenStore(rm, c.ResetTokenValidityDuration)
	resetService := services.NewPasswordResetService(db, rm, resetStore)
	productService := services.NewProductService(db, rm)

	guard := httpapi.NewGuard(codec, rm.Users(db))

	router := httpapi.NewRouter(
		httpapi.NewAuthHandler(logger, authService, resetService),
		httpapi.NewUserHandler(logger, authService),
		httpapi.NewProductHandler(logger, productService, guard),
	)

	srv := httpapi.NewServer(c.EndpointAddr, router, logger)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
