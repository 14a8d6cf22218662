package service

import (
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLogService interface {
	Log(action model.Action, entityType model.EntityType, entityID *uuid.UUID, description string, metadata map[string]any) (*model.ActivityLog, error)
	LogTx(tx *gorm.DB, action model.Action, entityType model.EntityType, entityID *uuid.UUID, description string, metadata map[string]any) (*model.ActivityLog, error)
	ListVisible(limit int) ([]model.ActivityLog, error)
	ForEntity(entityType model.EntityType, entityID uuid.UUID) ([]model.ActivityLog, error)
	ByAction(action model.Action) ([]model.ActivityLog, error)
	Recent(n int) ([]model.ActivityLog, error)
	SoftDelete(id uuid.UUID) error
	SoftDeleteMany(ids []uuid.UUID) (int64, error)
	SoftDeleteCategory(category model.ActivityCategory) (int64, error)
	CleanupOlderThan(retention time.Duration) (int64, error)
}

type activityService struct {
	logRepo repository.ActivityLogRepository
	db      *gorm.DB
}

func NewActivityLogService(logRepo repository.ActivityLogRepository, db *gorm.DB) ActivityLogService {
	return &activityService{logRepo: logRepo, db: db}
}

// Log appends one immutable audit entry. A storage error propagates to
// the caller; the audit trail is never best-effort.
func (s *activityService) Log(action model.Action, entityType model.EntityType, entityID *uuid.UUID, description string, metadata map[string]any) (*model.ActivityLog, error) {
	return s.LogTx(s.db, action, entityType, entityID, description, metadata)
}

// LogTx is Log riding inside a caller-owned transaction, so a sale commit
// and its audit entry land or roll back together.
func (s *activityService) LogTx(tx *gorm.DB, action model.Action, entityType model.EntityType, entityID *uuid.UUID, description string, metadata map[string]any) (*model.ActivityLog, error) {
	entry := &model.ActivityLog{
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Metadata:    metadata,
	}
	if err := s.logRepo.Create(tx, entry); err != nil {
		return nil, fmt.Errorf("write activity log: %w", err)
	}
	return entry, nil
}

func (s *activityService) ListVisible(limit int) ([]model.ActivityLog, error) {
	return s.logRepo.ListVisible(limit)
}

func (s *activityService) ForEntity(entityType model.EntityType, entityID uuid.UUID) ([]model.ActivityLog, error) {
	return s.logRepo.FindByEntity(entityType, entityID)
}

func (s *activityService) ByAction(action model.Action) ([]model.ActivityLog, error) {
	return s.logRepo.FindByAction(action)
}

func (s *activityService) Recent(n int) ([]model.ActivityLog, error) {
	return s.logRepo.Recent(n)
}

func (s *activityService) SoftDelete(id uuid.UUID) error {
	return s.logRepo.SoftDelete(id)
}

func (s *activityService) SoftDeleteMany(ids []uuid.UUID) (int64, error) {
	return s.logRepo.SoftDeleteMany(ids)
}

// SoftDeleteCategory hides every visible entry whose action belongs to
// the given grouping (inventory, sales or system).
func (s *activityService) SoftDeleteCategory(category model.ActivityCategory) (int64, error) {
	return s.logRepo.SoftDeleteByActions(model.CategoryActions(category))
}

// CleanupOlderThan hides entries older than the retention window.
func (s *activityService) CleanupOlderThan(retention time.Duration) (int64, error) {
	return s.logRepo.SoftDeleteOlderThan(time.Now().Add(-retention))
}
