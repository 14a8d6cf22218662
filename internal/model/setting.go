package model

import "time"

// Setting is one user preference row. Values are stored as JSON text so
// consumers request typed values by key with a default-on-absent contract
// instead of the store enforcing a rigid schema.
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primary_key" json:"key" validate:"required,max=100"`
	Value     string    `gorm:"type:text;not null" json:"value" validate:"max=10000"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default setting keys seeded on first run.
const (
	SettingSchemaVersion       = "schema_version"
	SettingBackupMaxFileSizeMB = "backup.max_file_size_mb"
	SettingLogRetentionDays    = "activity_log.retention_days"
	SettingLogAutoCleanup      = "activity_log.auto_cleanup"
	SettingTheme               = "appearance.theme"
	SettingBusinessName        = "branding.business_name"
)
