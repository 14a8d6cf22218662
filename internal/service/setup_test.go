package service

import (
	"testing"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/database"

	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	inv      InventoryService
	sales    SalesService
	activity ActivityLogService
	catalog  CatalogService
	settings SettingsService
	backup   BackupService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	partRepo := repository.NewPartRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	brandRepo := repository.NewBrandRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	activitySvc := NewActivityLogService(activityRepo, db)
	settingsSvc := NewSettingsService(settingRepo, activitySvc)

	return &testEnv{
		db:       db,
		inv:      NewInventoryService(partRepo, activitySvc, db),
		sales:    NewSalesService(saleRepo, partRepo, activitySvc, db),
		activity: activitySvc,
		catalog:  NewCatalogService(brandRepo, categoryRepo, partRepo, activitySvc),
		settings: settingsSvc,
		backup:   NewBackupService(settingsSvc, activitySvc, db),
	}
}

func (e *testEnv) createPart(t *testing.T, name, sku string, qty int, buy, sell float64) *model.Part {
	t.Helper()
	part := &model.Part{
		Name:         name,
		SKU:          sku,
		Quantity:     qty,
		BuyingPrice:  buy,
		SellingPrice: sell,
	}
	if err := e.inv.CreatePart(part); err != nil {
		t.Fatalf("create part %s: %v", sku, err)
	}
	return part
}

func (e *testEnv) countSales(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&model.Sale{}).Count(&n).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	return n
}

func listAll() repository.PartFilter {
	return repository.PartFilter{}
}

func (e *testEnv) countVisibleLogs(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&model.ActivityLog{}).Where("is_deleted = ?", false).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}
