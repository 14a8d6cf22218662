package service

import (
	"testing"

	"go-parts-inventory/internal/model"
)

func TestSettingsDefaultOnAbsent(t *testing.T) {
	env := setup(t)

	_, ok, err := env.settings.Get("nonexistent.key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected absent key")
	}

	cfg, err := env.settings.BackupConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.MaxFileSizeMB != 100 {
		t.Fatalf("default size limit = %d, want 100", cfg.MaxFileSizeMB)
	}
}

func TestSettingsUpdateAndTypedRead(t *testing.T) {
	env := setup(t)

	if err := env.settings.Update(model.SettingLogRetentionDays, "30"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := env.settings.Update(model.SettingLogAutoCleanup, "true"); err != nil {
		t.Fatalf("update: %v", err)
	}

	cfg, err := env.settings.ActivityLogConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.RetentionDays != 30 || !cfg.AutoCleanup {
		t.Fatalf("config = %+v, want 30/true", cfg)
	}
}

func TestSettingsMalformedValueFallsBack(t *testing.T) {
	env := setup(t)

	if err := env.settings.Update(model.SettingBackupMaxFileSizeMB, `"not a number"`); err != nil {
		t.Fatalf("update: %v", err)
	}
	cfg, err := env.settings.BackupConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.MaxFileSizeMB != 100 {
		t.Fatalf("malformed value must fall back to default, got %d", cfg.MaxFileSizeMB)
	}
}
