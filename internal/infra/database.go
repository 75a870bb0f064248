package infra

import (
	"fmt"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial indexes, composite ordering indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// TranslateError maps driver unique-violation errors to
		// gorm.ErrDuplicatedKey so the service layer can classify conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Asset{},
		&model.Employee{},
		&model.Site{},
		&model.Location{},
		&model.Department{},
		&model.Category{},
		&model.Checkout{},
		&model.Checkin{},
		&model.Lease{},
		&model.LeaseReturn{},
		&model.Reservation{},
		&model.Move{},
		&model.Disposal{},
		&model.HistoryLog{},
		&model.Maintenance{},
		&model.MaintenanceSchedule{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Timeline reads are always (asset_id, event_date DESC).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_history_logs_asset_event_date') THEN
		    CREATE INDEX idx_history_logs_asset_event_date
		        ON history_logs (asset_id, event_date DESC);
		  END IF;
		END $$`,
		// Partial index for the active-checkout probe (checkouts with no check-in).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_checkouts_active') THEN
		    CREATE INDEX idx_checkouts_active
		        ON checkouts (asset_id)
		        WHERE employee_id IS NOT NULL;
		  END IF;
		END $$`,
		// Partial index for the due-schedule sweep.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_maintenance_schedules_due') THEN
		    CREATE INDEX idx_maintenance_schedules_due
		        ON maintenance_schedules (next_run_at)
		        WHERE active;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
