package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/validator"

	"gorm.io/gorm"
)

const (
	maxCollectionRecords = 50000
	maxSettingsRecords   = 1000
	importBatchSize      = 500
)

// FileTooLargeError rejects an oversized payload before JSON parsing is
// attempted, bounding memory use on corrupt or malicious files.
type FileTooLargeError struct {
	SizeBytes  int
	LimitBytes int
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("backup file is %d bytes, limit is %d", e.SizeBytes, e.LimitBytes)
}

// BackupValidationError carries the path of the first failing field,
// e.g. parts.0.quantity.
type BackupValidationError struct {
	Path   string
	Reason string
}

func (e *BackupValidationError) Error() string {
	return fmt.Sprintf("invalid backup field %s: %s", e.Path, e.Reason)
}

type BackupService interface {
	Export() (*BackupFile, error)
	ExportJSON() ([]byte, error)
	SafeJSONParse(raw []byte) ([]byte, error)
	ValidateBackupFile(raw []byte) (*BackupFile, error)
	Import(backup *BackupFile) error
	ImportJSON(raw []byte) error
}

type backupService struct {
	settings SettingsService
	activity ActivityLogService
	db       *gorm.DB
}

func NewBackupService(settings SettingsService, activity ActivityLogService, db *gorm.DB) BackupService {
	return &backupService{settings: settings, activity: activity, db: db}
}

// Export snapshots all collections plus the schema version and a
// timestamp into one structure.
func (s *backupService) Export() (*BackupFile, error) {
	backup := &BackupFile{
		Version:    fmt.Sprintf("%d", database.SchemaVersion),
		ExportedAt: time.Now().UTC(),
	}

	if err := s.db.Order("created_at").Find(&backup.Parts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at").Find(&backup.Brands).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at").Find(&backup.Categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at").Find(&backup.Sales).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at").Find(&backup.ActivityLogs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("key").Find(&backup.Settings).Error; err != nil {
		return nil, err
	}

	_, err := s.activity.Log(model.ActionBackup, model.EntityBackup, nil,
		fmt.Sprintf("Exported backup (%d parts, %d sales)", len(backup.Parts), len(backup.Sales)),
		map[string]any{"version": backup.Version})
	if err != nil {
		return nil, err
	}
	return backup, nil
}

func (s *backupService) ExportJSON() ([]byte, error) {
	backup, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(backup, "", "  ")
}

// SafeJSONParse size-guards the raw input and confirms it is well-formed
// JSON. The size check runs first so a huge file is rejected without
// touching the parser.
func (s *backupService) SafeJSONParse(raw []byte) ([]byte, error) {
	cfg, err := s.settings.BackupConfig()
	if err != nil {
		return nil, err
	}
	limit := cfg.MaxFileSizeMB * 1024 * 1024
	if len(raw) > limit {
		return nil, &FileTooLargeError{SizeBytes: len(raw), LimitBytes: limit}
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid backup file: not valid JSON")
	}
	return raw, nil
}

// ValidateBackupFile runs the full gate: size, parse, structural schema
// with per-field bounds and date normalization. A corrupted or
// hand-edited file is rejected here, never deep inside the restore
// transaction.
func (s *backupService) ValidateBackupFile(raw []byte) (*BackupFile, error) {
	raw, err := s.SafeJSONParse(raw)
	if err != nil {
		return nil, err
	}

	var env backupEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}

	for _, c := range []struct {
		name string
		n    int
		cap  int
	}{
		{"parts", len(env.Parts), maxCollectionRecords},
		{"brands", len(env.Brands), maxCollectionRecords},
		{"categories", len(env.Categories), maxCollectionRecords},
		{"sales", len(env.Sales), maxCollectionRecords},
		{"activityLogs", len(env.ActivityLogs), maxCollectionRecords},
		{"settings", len(env.Settings), maxSettingsRecords},
	} {
		if c.n > c.cap {
			return nil, &BackupValidationError{Path: c.name, Reason: fmt.Sprintf("%d entries exceeds cap of %d", c.n, c.cap)}
		}
	}

	backup := &BackupFile{
		Version:    string(env.Version),
		ExportedAt: env.ExportedAt.Time,
	}
	if backup.Version == "" {
		backup.Version = "1"
	}

	for i, raw := range env.Parts {
		var rec partRecord
		if err := decodeRecord(raw, &rec, "parts", i); err != nil {
			return nil, err
		}
		backup.Parts = append(backup.Parts, rec.toModel())
	}
	for i, raw := range env.Brands {
		var rec namedRecord
		if err := decodeRecord(raw, &rec, "brands", i); err != nil {
			return nil, err
		}
		backup.Brands = append(backup.Brands, model.Brand{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt.Time})
	}
	for i, raw := range env.Categories {
		var rec namedRecord
		if err := decodeRecord(raw, &rec, "categories", i); err != nil {
			return nil, err
		}
		backup.Categories = append(backup.Categories, model.Category{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt.Time})
	}
	for i, raw := range env.Sales {
		var rec saleRecord
		if err := decodeRecord(raw, &rec, "sales", i); err != nil {
			return nil, err
		}
		backup.Sales = append(backup.Sales, rec.toModel())
	}
	for i, raw := range env.ActivityLogs {
		var rec activityRecord
		if err := decodeRecord(raw, &rec, "activityLogs", i); err != nil {
			return nil, err
		}
		backup.ActivityLogs = append(backup.ActivityLogs, rec.toModel())
	}
	for i, raw := range env.Settings {
		var rec settingRecord
		if err := decodeRecord(raw, &rec, "settings", i); err != nil {
			return nil, err
		}
		backup.Settings = append(backup.Settings, model.Setting{Key: rec.Key, Value: rec.Value, UpdatedAt: rec.UpdatedAt.Time})
	}

	return backup, nil
}

// decodeRecord unmarshals and validates one collection element,
// reporting the first failure with its indexed field path.
func decodeRecord(raw json.RawMessage, rec any, collection string, index int) error {
	if err := json.Unmarshal(raw, rec); err != nil {
		reason := err.Error()
		path := fmt.Sprintf("%s.%d", collection, index)
		if ute, ok := err.(*json.UnmarshalTypeError); ok && ute.Field != "" {
			path = fmt.Sprintf("%s.%s", path, ute.Field)
			reason = fmt.Sprintf("expected %s", ute.Type)
		}
		return &BackupValidationError{Path: path, Reason: reason}
	}
	if errs := validator.FieldErrors(rec); len(errs) > 0 {
		first := errs[0]
		return &BackupValidationError{
			Path:   fmt.Sprintf("%s.%d.%s", collection, index, first.Field()),
			Reason: fmt.Sprintf("failed on '%s'", first.Tag()),
		}
	}
	return nil
}

// Import performs the full-replace restore: every collection is cleared
// and re-filled from the backup inside one transaction, so a failure
// leaves no partial data.
func (s *backupService) Import(backup *BackupFile) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.Sale{}, &model.ActivityLog{}, &model.Part{},
			&model.Brand{}, &model.Category{}, &model.Setting{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("clear collection: %w", err)
			}
		}

		if len(backup.Parts) > 0 {
			if err := tx.CreateInBatches(backup.Parts, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore parts: %w", err)
			}
		}
		if len(backup.Brands) > 0 {
			if err := tx.CreateInBatches(backup.Brands, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore brands: %w", err)
			}
		}
		if len(backup.Categories) > 0 {
			if err := tx.CreateInBatches(backup.Categories, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore categories: %w", err)
			}
		}
		if len(backup.Sales) > 0 {
			if err := tx.CreateInBatches(backup.Sales, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore sales: %w", err)
			}
		}
		if len(backup.ActivityLogs) > 0 {
			if err := tx.CreateInBatches(backup.ActivityLogs, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore activity logs: %w", err)
			}
		}
		if len(backup.Settings) > 0 {
			if err := tx.CreateInBatches(backup.Settings, importBatchSize).Error; err != nil {
				return fmt.Errorf("restore settings: %w", err)
			}
		}

		// The live schema version always wins over whatever the backup
		// carried.
		return tx.Save(&model.Setting{
			Key:   model.SettingSchemaVersion,
			Value: fmt.Sprintf("%d", database.SchemaVersion),
		}).Error
	})
	if err != nil {
		return err
	}

	_, err = s.activity.Log(model.ActionRestore, model.EntityBackup, nil,
		fmt.Sprintf("Restored backup (%d parts, %d sales)", len(backup.Parts), len(backup.Sales)),
		map[string]any{"version": backup.Version, "exported_at": backup.ExportedAt})
	return err
}

func (s *backupService) ImportJSON(raw []byte) error {
	backup, err := s.ValidateBackupFile(raw)
	if err != nil {
		return err
	}
	return s.Import(backup)
}
