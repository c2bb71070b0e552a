package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	authdomain "github.com/legatepro/legatepro/internal/auth/domain"
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	expensedomain "github.com/legatepro/legatepro/internal/expense/domain"
	invoicedomain "github.com/legatepro/legatepro/internal/invoice/domain"
	taskdomain "github.com/legatepro/legatepro/internal/task/domain"
	timeentrydomain "github.com/legatepro/legatepro/internal/timeentry/domain"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies the embedded SQL migrations. All core tables are
// created automatically on startup so a fresh database is usable out of
// the box.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema through gorm for databases the SQL
// migrations do not target, such as sqlite in development.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&estatedomain.Estate{},
		&estatedomain.Collaborator{},
		&invoicedomain.Invoice{},
		&timeentrydomain.TimeEntry{},
		&expensedomain.Expense{},
		&taskdomain.Task{},
		&activitydomain.Activity{},
		&workspacedomain.Settings{},
	)
}
