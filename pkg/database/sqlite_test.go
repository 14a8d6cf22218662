package database

import (
	"testing"

	"go-parts-inventory/internal/model"
)

func TestMigrateAndSeedAreIdempotent(t *testing.T) {
	db, err := Connect(":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
		if err := SeedDefaults(db); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&model.Setting{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	// 5 defaults + the schema version row; reruns add nothing.
	if count != int64(len(defaultSettings))+1 {
		t.Fatalf("settings rows = %d, want %d", count, len(defaultSettings)+1)
	}

	var version model.Setting
	if err := db.First(&version, "key = ?", model.SettingSchemaVersion).Error; err != nil {
		t.Fatalf("schema version row missing: %v", err)
	}
	if version.Value != "2" {
		t.Fatalf("schema version = %q, want \"2\"", version.Value)
	}
}

func TestMigrateBackfillsSoftDeleteFlag(t *testing.T) {
	db, err := Connect(":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Simulate a v1 store: a log row with a NULL flag and a stored
	// version behind the current one.
	if err := db.Exec(`INSERT INTO activity_logs (id, action, entity_type, description, is_deleted, created_at)
		VALUES ('00000000-0000-0000-0000-000000000001', 'create', 'part', 'legacy row', NULL, CURRENT_TIMESTAMP)`).Error; err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	if err := db.Save(&model.Setting{Key: model.SettingSchemaVersion, Value: "1"}).Error; err != nil {
		t.Fatalf("downgrade version: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	var flagged int64
	if err := db.Model(&model.ActivityLog{}).Where("is_deleted = ?", false).Count(&flagged).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("legacy row not backfilled, visible count = %d", flagged)
	}
}
