package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"legalease.backend/internal/config"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/infrastructure/datasources/postgres"
	"legalease.backend/internal/infrastructure/repositories"
)

var openSetRoleDB = postgres.OpenGorm

var openSetRoleSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type setRoleRuntime interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
}

type setRoleDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (setRoleRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSetRoleDeps() setRoleDeps {
	return setRoleDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (setRoleRuntime, io.Closer, error) {
			db, err := openSetRoleDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openSetRoleSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewProfileRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

type target struct {
	id    uuid.UUID
	email string
	role  entities.UserRole
}

func parseTarget(userID, email, role string) (target, error) {
	var t target
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case userID == "" && email == "":
		return t, fmt.Errorf("one of -user-id or -email is required")
	case userID != "" && email != "":
		return t, fmt.Errorf("-user-id and -email are mutually exclusive")
	case userID != "":
		id, err := uuid.Parse(userID)
		if err != nil {
			return t, fmt.Errorf("invalid -user-id: %w", err)
		}
		t.id = id
	default:
		t.email = email
	}

	t.role = entities.UserRole(strings.ToLower(strings.TrimSpace(role)))
	if !t.role.Valid() {
		return t, fmt.Errorf("invalid -role %q (want user, lawyer or admin)", role)
	}
	return t, nil
}

func runSetRole(args []string, deps setRoleDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		deps.prepare = defaultSetRoleDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("setrole", flag.ContinueOnError)
	userIDFlag := fs.String("user-id", "", "target profile UUID")
	emailFlag := fs.String("email", "", "target profile email")
	roleFlag := fs.String("role", string(entities.UserRoleLawyer), "role to assign: user, lawyer or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := parseTarget(*userIDFlag, *emailFlag, *roleFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	runtime, closer, err := deps.prepare(deps.loadCfg())
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	var profile *entities.Profile
	if t.email != "" {
		profile, err = runtime.GetByEmail(ctx, t.email)
	} else {
		profile, err = runtime.GetByID(ctx, t.id)
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.Role == t.role {
		_, _ = fmt.Fprintf(deps.out, "profile %s (%s) already has role %s\n", profile.ID, profile.Email, profile.Role)
		return nil
	}

	if err := runtime.SetRole(ctx, profile.ID, t.role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "profile %s (%s) role %s -> %s\n", profile.ID, profile.Email, profile.Role, t.role)
	return nil
}

func main() {
	if err := runSetRole(os.Args[1:], defaultSetRoleDeps()); err != nil {
		log.Fatal(err)
	}
}
