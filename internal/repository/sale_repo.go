package repository

import (
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesSummary aggregates a date range of sales.
type SalesSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
	TotalItems   int64   `json:"total_items"`
	SaleCount    int64   `json:"sale_count"`
}

// TopSeller is one row of the best-sellers aggregation.
type TopSeller struct {
	PartID       uuid.UUID `json:"part_id"`
	PartName     string    `json:"part_name"`
	PartSKU      string    `json:"part_sku"`
	QuantitySold int64     `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
	Profit       float64   `json:"profit"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindBetween(start, end time.Time) ([]model.Sale, error)
	Delete(id uuid.UUID) error
	SummaryBetween(start, end time.Time) (*SalesSummary, error)
	TopSellers(start, end time.Time, limit int) ([]TopSeller, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create takes a *gorm.DB so multi-item sales can write every line inside
// one transaction.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindBetween(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Sale{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) SummaryBetween(start, end time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.Model(&model.Sale{}).
		Select(`
			COALESCE(SUM(total_amount), 0) as total_revenue,
			COALESCE(SUM(profit), 0) as total_profit,
			COALESCE(SUM(quantity), 0) as total_items,
			COUNT(*) as sale_count
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *saleRepo) TopSellers(start, end time.Time, limit int) ([]TopSeller, error) {
	var results []TopSeller
	err := r.db.Model(&model.Sale{}).
		Select(`
			part_id,
			MAX(part_name) as part_name,
			MAX(part_sku) as part_sku,
			COALESCE(SUM(quantity), 0) as quantity_sold,
			COALESCE(SUM(total_amount), 0) as revenue,
			COALESCE(SUM(profit), 0) as profit
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("part_id").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
