package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"go-parts-inventory/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is the version the current binary expects. Bump it when
// adding a step to migrationSteps.
const SchemaVersion = 2

// Connect opens (creating if needed) the embedded SQLite store.
func Connect(path string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; keep the pool at a single connection so
	// busy errors never surface mid-transaction.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	// WAL keeps readers unblocked during the sale-commit transactions.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA foreign_keys=ON")

	return db, nil
}

// migrationSteps holds one upgrade transform per schema version bump,
// indexed by the version it upgrades TO. Each runs at most once, when an
// existing store is opened at an older version.
var migrationSteps = map[int]func(tx *gorm.DB) error{
	// v2 introduced the soft-delete flag on activity logs; backfill it
	// on every pre-existing row.
	2: func(tx *gorm.DB) error {
		return tx.Model(&model.ActivityLog{}).
			Where("is_deleted IS NULL").
			Update("is_deleted", false).Error
	},
}

// Migrate syncs the table layout and applies any pending versioned
// upgrade transforms. The stored schema version lives in the settings
// table so backups carry it too.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Part{},
		&model.Brand{},
		&model.Category{},
		&model.Sale{},
		&model.ActivityLog{},
		&model.Setting{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		from, err := storedVersion(tx)
		if err != nil {
			return err
		}
		for v := from + 1; v <= SchemaVersion; v++ {
			if step, ok := migrationSteps[v]; ok {
				if err := step(tx); err != nil {
					return fmt.Errorf("migrate to v%d: %w", v, err)
				}
			}
			log.Printf("schema migrated to v%d", v)
		}
		return setStoredVersion(tx, SchemaVersion)
	})
}

func storedVersion(tx *gorm.DB) (int, error) {
	var row model.Setting
	err := tx.First(&row, "key = ?", model.SettingSchemaVersion).Error
	if err == gorm.ErrRecordNotFound {
		// Fresh store: AutoMigrate already produced the latest layout,
		// so no transforms are pending.
		return SchemaVersion, nil
	}
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(row.Value, "%d", &v); err != nil {
		return 0, fmt.Errorf("bad schema version %q: %w", row.Value, err)
	}
	return v, nil
}

func setStoredVersion(tx *gorm.DB, v int) error {
	row := model.Setting{Key: model.SettingSchemaVersion, Value: fmt.Sprintf("%d", v)}
	return tx.Save(&row).Error
}

// defaultSettings seeded on first run. Values are JSON-encoded.
var defaultSettings = map[string]string{
	model.SettingBackupMaxFileSizeMB: "100",
	model.SettingLogRetentionDays:    "90",
	model.SettingLogAutoCleanup:      "false",
	model.SettingTheme:               `"system"`,
	model.SettingBusinessName:        `""`,
}

// SeedDefaults inserts the default settings rows, checking existence by
// key first so reruns are no-ops.
func SeedDefaults(db *gorm.DB) error {
	for key, value := range defaultSettings {
		var count int64
		if err := db.Model(&model.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&model.Setting{Key: key, Value: value}).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}
