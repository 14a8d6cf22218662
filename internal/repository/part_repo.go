package repository

import (
	"errors"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartFilter narrows and orders part listings. Zero value lists
// everything sorted by name.
type PartFilter struct {
	Search     string // matches name or SKU, case-insensitive substring
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
	LowStock   bool // only parts at or below their threshold
	SortBy     string
	Descending bool
}

type PartRepository interface {
	Create(part *model.Part) error
	FindAll(filter PartFilter) ([]model.Part, error)
	FindByID(id uuid.UUID) (*model.Part, error)
	FindBySKU(sku string) (*model.Part, error)
	Update(part *model.Part) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
	Delete(id uuid.UUID) error
	CountBySKU(sku string, excludeID *uuid.UUID) (int64, error)
	CountByBrand(brandID uuid.UUID) (int64, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
}

type partRepo struct {
	db *gorm.DB
}

func NewPartRepo(db *gorm.DB) PartRepository {
	return &partRepo{db}
}

func (r *partRepo) Create(part *model.Part) error {
	return r.db.Create(part).Error
}

var partSortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"quantity":   "quantity",
	"updated_at": "updated_at",
	"created_at": "created_at",
}

func (r *partRepo) FindAll(filter PartFilter) ([]model.Part, error) {
	q := r.db.Model(&model.Part{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.LowStock {
		q = q.Where("quantity <= min_stock_level")
	}

	col, ok := partSortColumns[filter.SortBy]
	if !ok {
		col = "name"
	}
	if filter.Descending {
		col += " DESC"
	}

	var parts []model.Part
	err := q.Order(col).Find(&parts).Error
	return parts, err
}

func (r *partRepo) FindByID(id uuid.UUID) (*model.Part, error) {
	var part model.Part
	err := r.db.First(&part, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) FindBySKU(sku string) (*model.Part, error) {
	var part model.Part
	err := r.db.First(&part, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) Update(part *model.Part) error {
	return r.db.Save(part).Error
}

// UpdateQuantity takes a *gorm.DB so the write can ride inside a caller's
// transaction (the sale commit spans sales, parts and activity logs).
func (r *partRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	res := tx.Model(&model.Part{}).
		Where("id = ?", id).
		Update("quantity", newQuantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *partRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Part{}, "id = ?", id).Error
}

// CountBySKU counts parts holding this exact SKU, optionally excluding
// one id (an update checks against all other parts).
func (r *partRepo) CountBySKU(sku string, excludeID *uuid.UUID) (int64, error) {
	q := r.db.Model(&model.Part{}).Where("sku = ?", sku)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *partRepo) CountByBrand(brandID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Part{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

func (r *partRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Part{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
