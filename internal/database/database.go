// internal/database/database.go
package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cabinreserve/internal/models"
)

// Connect opens the Postgres connection, tunes the pool, and runs migrations.
func Connect(databaseURL string) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database connected and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Cabin{},
		&models.Customer{},
		&models.Booking{},
		&models.Transaction{},
		&models.Conversation{},
		&models.Message{},
		&models.FAQ{},
		&models.BusinessFact{},
		&models.AuditEntry{},
	}

	for _, m := range toMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_cabin_dates ON bookings(cabin_id, check_in_date, check_out_date)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_booking ON transactions(booking_id)",
		"CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages(conversation_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_audit_entries_table_record ON audit_entries(table_name, record_id)",
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			slog.Warn("failed to create index", "query", idx, "error", err)
		}
	}
	return nil
}

// CreateUniqueConstraints installs the Postgres-level backstop against
// overlapping confirmed bookings for the same cabin. This exists alongside
// the lock-store hold mechanism — the hold prevents the race in the normal
// path, this trigger prevents it surviving an operator doing a direct write.
func CreateUniqueConstraints(db *gorm.DB) error {
	statements := []string{
		`CREATE OR REPLACE FUNCTION check_booking_conflict()
			RETURNS TRIGGER AS $$
			BEGIN
			IF NEW.status = 'confirmed' AND EXISTS (
				SELECT 1 FROM bookings
				WHERE cabin_id = NEW.cabin_id
				AND id != COALESCE(NEW.id, '00000000-0000-0000-0000-000000000000'::uuid)
				AND status = 'confirmed'
				AND deleted_at IS NULL
				AND check_in_date < NEW.check_out_date
				AND NEW.check_in_date < check_out_date
			) THEN
				RAISE EXCEPTION 'booking conflicts with an existing confirmed booking';
			END IF;
			RETURN NEW;
			END;
			$$ LANGUAGE plpgsql`,

		`DROP TRIGGER IF EXISTS booking_conflict_trigger ON bookings`,

		`CREATE TRIGGER booking_conflict_trigger
			BEFORE INSERT OR UPDATE ON bookings
			FOR EACH ROW EXECUTE FUNCTION check_booking_conflict()`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	return nil
}

// SeedDatabase installs the small set of business facts every deployment
// needs on first boot. It is a no-op if facts already exist.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.BusinessFact{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count business facts: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.BusinessFact{
		{FactKey: "check_in_time", FactValue: "15:00", Category: "policy", IsActive: true},
		{FactKey: "check_out_time", FactValue: "11:00", Category: "policy", IsActive: true},
		{FactKey: "cancellation_policy", FactValue: "Free cancellation up to 7 days before check-in.", Category: "policy", IsActive: true},
		{FactKey: "pets_allowed", FactValue: "Pets are welcome at select cabins, please ask.", Category: "amenity", IsActive: true},
	}

	return db.Create(&defaults).Error
}

// HasColumn probes information_schema to tolerate tables created by an
// earlier version of this service (or by the original Python deployment)
// that may be missing a column this build expects.
func HasColumn(db *gorm.DB, table, column string) bool {
	var count int64
	db.Raw(
		`SELECT count(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?`,
		table, column,
	).Scan(&count)
	return count > 0
}

// CloseConnection releases the underlying connection pool.
func CloseConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("database connection closed")
	return nil
}
