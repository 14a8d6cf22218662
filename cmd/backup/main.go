package main

import (
	"flag"
	"log"
	"os"

	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/service"
	"go-parts-inventory/pkg/database"

	"github.com/joho/godotenv"
)

// Export or restore a full backup of the parts store:
//
//	backup -export backup.json
//	backup -import backup.json
func main() {
	exportPath := flag.String("export", "", "write a backup to this file")
	importPath := flag.String("import", "", "restore (full replace) from this file")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		log.Fatal("Specify exactly one of -export or -import")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	path := os.Getenv("APP_DB_PATH")
	if path == "" {
		path = "parts.db"
	}
	db, err := database.Connect(path)
	if err != nil {
		log.Fatal("Failed to open database. \n", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed. \n", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		log.Fatal("Seeding failed. \n", err)
	}

	activityRepo := repository.NewActivityRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	activitySvc := service.NewActivityLogService(activityRepo, db)
	settingsSvc := service.NewSettingsService(settingRepo, activitySvc)
	backupSvc := service.NewBackupService(settingsSvc, activitySvc, db)

	if *exportPath != "" {
		data, err := backupSvc.ExportJSON()
		if err != nil {
			log.Fatal("Export failed. \n", err)
		}
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			log.Fatal("Write failed. \n", err)
		}
		log.Printf("Backup written to %s (%d bytes)", *exportPath, len(data))
		return
	}

	raw, err := os.ReadFile(*importPath)
	if err != nil {
		log.Fatal("Read failed. \n", err)
	}
	if err := backupSvc.ImportJSON(raw); err != nil {
		log.Fatal("Restore failed. \n", err)
	}
	log.Printf("Backup restored from %s", *importPath)
}
