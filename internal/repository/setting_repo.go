package repository

import (
	"go-parts-inventory/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	Get(key string) (*model.Setting, error)
	All() ([]model.Setting, error)
	Upsert(key, value string) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get(key string) (*model.Setting, error) {
	var row model.Setting
	err := r.db.First(&row, "key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *settingRepo) All() ([]model.Setting, error) {
	var rows []model.Setting
	err := r.db.Order("key").Find(&rows).Error
	return rows, err
}

func (r *settingRepo) Upsert(key, value string) error {
	return r.db.Save(&model.Setting{Key: key, Value: value}).Error
}
