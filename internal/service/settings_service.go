package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
)

// BackupConfig is the settings group the backup pipeline reads.
type BackupConfig struct {
	MaxFileSizeMB int
}

// DefaultBackupConfig applies when the rows are absent or malformed.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{MaxFileSizeMB: 100}
}

// ActivityLogConfig drives the log auto-cleanup.
type ActivityLogConfig struct {
	RetentionDays int
	AutoCleanup   bool
}

func DefaultActivityLogConfig() ActivityLogConfig {
	return ActivityLogConfig{RetentionDays: 90, AutoCleanup: false}
}

// Retention converts the configured days into a duration.
func (c ActivityLogConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

type SettingsService interface {
	Get(key string) (string, bool, error)
	Update(key, value string) error
	BackupConfig() (BackupConfig, error)
	ActivityLogConfig() (ActivityLogConfig, error)
}

type settingsService struct {
	settingRepo repository.SettingRepository
	activity    ActivityLogService
}

func NewSettingsService(settingRepo repository.SettingRepository, activity ActivityLogService) SettingsService {
	return &settingsService{settingRepo: settingRepo, activity: activity}
}

// Get returns the raw JSON value for a key; the second result is false
// when the key is absent. UI-owned keys (theme, branding) stay opaque
// strings here.
func (s *settingsService) Get(key string) (string, bool, error) {
	row, err := s.settingRepo.Get(key)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *settingsService) Update(key, value string) error {
	if key == "" {
		return fmt.Errorf("setting key is required")
	}
	if err := s.settingRepo.Upsert(key, value); err != nil {
		return err
	}
	_, err := s.activity.Log(model.ActionUpdate, model.EntitySettings, nil,
		fmt.Sprintf("Updated setting '%s'", key), nil)
	return err
}

// BackupConfig assembles the typed group; an unknown or unparsable key
// falls back to its default rather than failing.
func (s *settingsService) BackupConfig() (BackupConfig, error) {
	cfg := DefaultBackupConfig()
	if v, ok, err := s.Get(model.SettingBackupMaxFileSizeMB); err != nil {
		return cfg, err
	} else if ok {
		var n int
		if json.Unmarshal([]byte(v), &n) == nil && n > 0 {
			cfg.MaxFileSizeMB = n
		}
	}
	return cfg, nil
}

func (s *settingsService) ActivityLogConfig() (ActivityLogConfig, error) {
	cfg := DefaultActivityLogConfig()
	if v, ok, err := s.Get(model.SettingLogRetentionDays); err != nil {
		return cfg, err
	} else if ok {
		var n int
		if json.Unmarshal([]byte(v), &n) == nil && n > 0 {
			cfg.RetentionDays = n
		}
	}
	if v, ok, err := s.Get(model.SettingLogAutoCleanup); err != nil {
		return cfg, err
	} else if ok {
		var b bool
		if json.Unmarshal([]byte(v), &b) == nil {
			cfg.AutoCleanup = b
		}
	}
	return cfg, nil
}
