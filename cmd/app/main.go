package main

import (
	"log"
	"os"
	"time"

	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/service"
	"go-parts-inventory/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Open the embedded store
	path := os.Getenv("APP_DB_PATH")
	if path == "" {
		path = "parts.db"
	}
	db, err := database.Connect(path)
	if err != nil {
		log.Fatal("Failed to open database. \n", err)
	}

	// 3. Migrate schema and seed default settings (idempotent)
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed. \n", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		log.Fatal("Seeding failed. \n", err)
	}

	// 4. Dependency Injection (Wiring Layers)
	partRepo := repository.NewPartRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	activitySvc := service.NewActivityLogService(activityRepo, db)
	settingsSvc := service.NewSettingsService(settingRepo, activitySvc)
	invSvc := service.NewInventoryService(partRepo, activitySvc, db)
	salesSvc := service.NewSalesService(saleRepo, partRepo, activitySvc, db)

	// 5. Optional activity log cleanup on startup
	logCfg, err := settingsSvc.ActivityLogConfig()
	if err != nil {
		log.Fatal("Failed to read settings. \n", err)
	}
	if logCfg.AutoCleanup {
		n, err := activitySvc.CleanupOlderThan(logCfg.Retention())
		if err != nil {
			log.Fatal("Log cleanup failed. \n", err)
		}
		if n > 0 {
			log.Printf("Hid %d activity log entries older than %d days", n, logCfg.RetentionDays)
		}
	}

	value, err := invSvc.GetInventoryValue()
	if err != nil {
		log.Fatal("Failed to read inventory. \n", err)
	}
	log.Printf("Store ready: %d parts, %d units, cost value %.2f, retail value %.2f",
		value.PartCount, value.UnitCount, value.TotalCost, value.TotalRetail)

	dayStart := time.Now().Truncate(24 * time.Hour)
	summary, err := salesSvc.GetSalesSummary(dayStart, time.Now())
	if err != nil {
		log.Fatal("Failed to read sales. \n", err)
	}
	log.Printf("Today: %d sale(s), revenue %.2f, profit %.2f",
		summary.SaleCount, summary.TotalRevenue, summary.TotalProfit)
}
