package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"legalease.backend/internal/config"
	"legalease.backend/internal/infrastructure/datasources/postgres"
	"legalease.backend/migrations"
	"legalease.backend/pkg/logger"
)

type migrateDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	openDB  func(cfg config.DatabaseConfig) (*sql.DB, error)
	out     io.Writer
}

func defaultMigrateDeps() migrateDeps {
	return migrateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		openDB:  postgres.NewConnection,
		out:     os.Stdout,
	}
}

func runMigrate(args []string, deps migrateDeps) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	status := fs.Bool("status", false, "list pending migrations without applying them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	all, err := migrations.Load(migrations.Files)
	if err != nil {
		return err
	}

	db, err := deps.openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	runner := migrations.NewRunner(db, all)

	if *status {
		pending, err := runner.Pending(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "%d of %d migrations pending\n", len(pending), len(all))
		for _, m := range pending {
			_, _ = fmt.Fprintf(deps.out, "  %04d_%s\n", m.Version, m.Name)
		}
		return nil
	}

	n, err := runner.Up(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(deps.out, "Applied %d migration(s)\n", n)
	return nil
}

func main() {
	if err := runMigrate(os.Args[1:], defaultMigrateDeps()); err != nil {
		log.Fatal(err)
	}
}
