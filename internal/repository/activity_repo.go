package repository

import (
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(tx *gorm.DB, entry *model.ActivityLog) error
	ListVisible(limit int) ([]model.ActivityLog, error)
	FindByEntity(entityType model.EntityType, entityID uuid.UUID) ([]model.ActivityLog, error)
	FindByAction(action model.Action) ([]model.ActivityLog, error)
	Recent(n int) ([]model.ActivityLog, error)
	SoftDelete(id uuid.UUID) error
	SoftDeleteMany(ids []uuid.UUID) (int64, error)
	SoftDeleteByActions(actions []model.Action) (int64, error)
	SoftDeleteOlderThan(cutoff time.Time) (int64, error)
	CountVisible() (int64, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityLogRepository {
	return &activityRepo{db}
}

func (r *activityRepo) Create(tx *gorm.DB, entry *model.ActivityLog) error {
	return tx.Create(entry).Error
}

// visible is the one place the soft-delete filter is written; every read
// path goes through it so deleted rows can never leak into a view.
func (r *activityRepo) visible() *gorm.DB {
	return r.db.Model(&model.ActivityLog{}).Where("is_deleted = ?", false)
}

func (r *activityRepo) ListVisible(limit int) ([]model.ActivityLog, error) {
	q := r.visible().Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var logs []model.ActivityLog
	err := q.Find(&logs).Error
	return logs, err
}

func (r *activityRepo) FindByEntity(entityType model.EntityType, entityID uuid.UUID) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.visible().
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *activityRepo) FindByAction(action model.Action) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.visible().
		Where("action = ?", action).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *activityRepo) Recent(n int) ([]model.ActivityLog, error) {
	return r.ListVisible(n)
}

func (r *activityRepo) SoftDelete(id uuid.UUID) error {
	res := r.db.Model(&model.ActivityLog{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *activityRepo) SoftDeleteMany(ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&model.ActivityLog{}).
		Where("id IN ?", ids).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

func (r *activityRepo) SoftDeleteByActions(actions []model.Action) (int64, error) {
	if len(actions) == 0 {
		return 0, nil
	}
	res := r.db.Model(&model.ActivityLog{}).
		Where("action IN ? AND is_deleted = ?", actions, false).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

// SoftDeleteOlderThan hides entries created before cutoff. Rows stay in
// the store; the log is append-only.
func (r *activityRepo) SoftDeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Model(&model.ActivityLog{}).
		Where("created_at < ? AND is_deleted = ?", cutoff, false).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

func (r *activityRepo) CountVisible() (int64, error) {
	var count int64
	err := r.visible().Count(&count).Error
	return count, err
}
