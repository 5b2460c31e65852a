package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/infrastructure/config"
	"github.com/wims/backend/internal/infrastructure/logger"
	"github.com/wims/backend/internal/infrastructure/migration"
	"github.com/wims/backend/internal/infrastructure/persistence"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}
	migrationsPath = absPath

	// create needs no database connection
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name>")
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "seed" {
		if err := seed(&cfg.Database, log); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}
	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// seed creates the built-in roles and the initial admin account. It is
// idempotent: existing roles and users are left untouched.
func seed(cfg *config.DatabaseConfig, log *zap.Logger) error {
	ctx := context.Background()

	db, err := persistence.NewDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	roleRepo := persistence.NewGormRoleRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	adminRole, err := ensureRole(ctx, roleRepo, "admin", "Full access to all modules", identity.AllPermissions)
	if err != nil {
		return err
	}
	if _, err := ensureRole(ctx, roleRepo, "operator", "Day-to-day stock operations", []string{
		identity.PermStocksRead,
		identity.PermStocksWrite,
		identity.PermCountRead,
		identity.PermCountWrite,
		identity.PermWarningsRead,
		identity.PermReportsRead,
	}); err != nil {
		return err
	}

	exists, err := userRepo.ExistsByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		log.Info("Admin user already present, skipping")
		return nil
	}

	password := os.Getenv("WMS_SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Warn("WMS_SEED_ADMIN_PASSWORD not set, using default password")
	}

	admin, err := identity.NewUser("admin", password, "Administrator", "")
	if err != nil {
		return err
	}
	admin.SetRoles([]int64{adminRole.ID})
	if err := userRepo.Save(ctx, admin); err != nil {
		return err
	}

	log.Info("Seed completed", zap.Int64("admin_user_id", admin.ID))
	return nil
}

// ensureRole creates a role with the given permissions unless a role
// of that name already exists
func ensureRole(ctx context.Context, repo identity.RoleRepository, name, description string, perms []string) (*identity.Role, error) {
	existing, err := repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	role, err := identity.NewRole(name, description)
	if err != nil {
		return nil, err
	}
	for _, code := range perms {
		if err := role.Grant(code); err != nil {
			return nil, err
		}
	}
	if err := repo.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func printUsage() {
	fmt.Println(`WMS database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up               Apply all pending migrations
  down             Roll back all migrations
  step <n>         Apply n migrations (negative rolls back)
  version          Show current schema version
  force <version>  Force set schema version (recovery only)
  create <name>    Create a new migration file pair
  seed             Create built-in roles and the admin account

Flags:
  -path string       Path to migrations directory (default: ./migrations)
  -log-level string  Log level (default: info)`)
}
