package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	administratordomain "github.com/smallbiznis/waterline/internal/administrator/domain"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

// Models lists every persisted type in foreign key order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&authdomain.Session{},
		&administratordomain.Administrator{},
		&clientdomain.Client{},
		&facilitydomain.WaterSource{},
		&facilitydomain.Reservoir{},
		&facilitydomain.Pump{},
		&facilitydomain.Energy{},
		&facilitydomain.Filtration{},
		&distributiondomain.Distribution{},
		&invoicedomain.Invoice{},
		&alertdomain.Alert{},
		&feedbackdomain.Feedback{},
		&auditdomain.AuditLog{},
	}
}

// Migrate applies the embedded SQL migrations on postgres and falls back to
// gorm AutoMigrate for mysql and sqlite.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if conn.Dialector.Name() != db.DialectPostgres {
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

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
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
