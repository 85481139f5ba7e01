package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/flagx"
	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/seed"
	"github.com/pzubov/products-api/internal/server/config"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Seeder-specific flags; config flags (-d etc.) are handled by LoadConfig.
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-n", "-p"})
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	email := fs.String("e", "admin@example.com", "admin email")
	name := fs.String("n", "Admin User", "admin name")
	password := fs.String("p", "", "admin password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}

	if *password == "" {
		fmt.Print("Enter admin password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("password read error: %v", err)
		}
		*password = string(pw)
		common.WipeByteArray(pw)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations error: %v", err)
	}

	s := seed.New(db, rm, logger)
	if err := s.Run(ctx, seed.AdminParams{Email: *email, Name: *name, Password: *password}); err != nil {
		log.Fatalf("seed error: %v", err)
	}
}
