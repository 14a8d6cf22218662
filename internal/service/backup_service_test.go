package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go-parts-inventory/internal/model"
)

func TestBackupRoundTrip(t *testing.T) {
	env := setup(t)
	pad := env.createPart(t, "Brake Pad", "BP-001", 10, 100, 150)
	env.createPart(t, "Oil Filter", "OF-002", 4, 25, 40)
	if _, err := env.catalog.CreateBrand("Bosch"); err != nil {
		t.Fatalf("brand: %v", err)
	}
	if _, err := env.sales.RecordSale(SaleLine{PartID: pad.ID, Quantity: 2, UnitPrice: 150}, CustomerInfo{Name: "Ana"}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	raw, err := env.backup.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if err := env.backup.ImportJSON(raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Every collection restored equivalent to its pre-export state.
	parts, err := env.inv.ListParts(listAll())
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	restored, err := env.inv.GetPart(pad.ID)
	if err != nil || restored == nil {
		t.Fatalf("part id not preserved: %v", err)
	}
	if restored.Quantity != 8 || restored.SKU != "BP-001" || restored.BuyingPrice != 100 {
		t.Fatalf("restored part = %+v", restored)
	}

	if n := env.countSales(t); n != 1 {
		t.Fatalf("sales = %d, want 1", n)
	}
	brands, err := env.catalog.ListBrands()
	if err != nil || len(brands) != 1 || brands[0].Name != "Bosch" {
		t.Fatalf("brands restored wrong: %v %v", brands, err)
	}

	// A restore activity entry was written.
	logs, err := env.activity.ByAction(model.ActionRestore)
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected 1 restore log, got %d (%v)", len(logs), err)
	}
}

func TestValidateBackupRejectsNegativeQuantity(t *testing.T) {
	env := setup(t)
	raw := []byte(`{
		"version": 1,
		"exportedAt": "2026-01-15T10:00:00Z",
		"parts": [
			{"name": "Pad", "sku": "BP-001", "quantity": -5}
		]
	}`)

	_, err := env.backup.ValidateBackupFile(raw)
	var verr *BackupValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected BackupValidationError, got %v", err)
	}
	if verr.Path != "parts.0.quantity" {
		t.Fatalf("path = %q, want parts.0.quantity", verr.Path)
	}

	// Nothing was written.
	parts, _ := env.inv.ListParts(listAll())
	if len(parts) != 0 {
		t.Fatal("validation failure must not write data")
	}
}

func TestValidateBackupRejectsBadEnum(t *testing.T) {
	env := setup(t)
	raw := []byte(`{
		"version": "1",
		"activityLogs": [
			{"action": "explode", "entity_type": "part", "description": "x"}
		]
	}`)

	_, err := env.backup.ValidateBackupFile(raw)
	var verr *BackupValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected BackupValidationError, got %v", err)
	}
	if verr.Path != "activityLogs.0.action" {
		t.Fatalf("path = %q, want activityLogs.0.action", verr.Path)
	}
}

func TestSafeJSONParseSizeLimit(t *testing.T) {
	env := setup(t)
	// Lower the configured cap to 1MB, then offer a 2MB payload.
	if err := env.settings.Update(model.SettingBackupMaxFileSizeMB, "1"); err != nil {
		t.Fatalf("set limit: %v", err)
	}

	big := bytes.Repeat([]byte("x"), 2*1024*1024)
	_, err := env.backup.SafeJSONParse(big)
	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected FileTooLargeError, got %v", err)
	}
	if tooLarge.LimitBytes != 1024*1024 {
		t.Fatalf("limit = %d, want 1MB", tooLarge.LimitBytes)
	}
}

func TestSafeJSONParseRejectsMalformedJSON(t *testing.T) {
	env := setup(t)
	_, err := env.backup.SafeJSONParse([]byte(`{"version": `))
	if err == nil || !strings.Contains(err.Error(), "invalid backup file") {
		t.Fatalf("expected invalid-file error, got %v", err)
	}
}

func TestValidateBackupFlexibleDatesAndVersion(t *testing.T) {
	env := setup(t)
	raw := []byte(fmt.Sprintf(`{
		"version": 3,
		"exportedAt": %d,
		"parts": [
			{"name": "Pad", "sku": "BP-001", "quantity": 2, "created_at": "2026-01-15", "updated_at": 1768500000000}
		]
	}`, 1768500000))

	backup, err := env.backup.ValidateBackupFile(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if backup.Version != "3" {
		t.Fatalf("version = %q, want coerced \"3\"", backup.Version)
	}
	if backup.ExportedAt.IsZero() {
		t.Fatal("numeric exportedAt not normalized")
	}
	if backup.Parts[0].CreatedAt.IsZero() || backup.Parts[0].UpdatedAt.IsZero() {
		t.Fatal("date-only and millisecond stamps must normalize")
	}
}

func TestValidateBackupToleratesUnknownFields(t *testing.T) {
	env := setup(t)
	raw := []byte(`{
		"version": "1",
		"someFutureField": {"nested": true},
		"brands": [
			{"name": "Bosch", "legacy_code": "B-77"}
		]
	}`)

	backup, err := env.backup.ValidateBackupFile(raw)
	if err != nil {
		t.Fatalf("unknown fields must be tolerated: %v", err)
	}
	if len(backup.Brands) != 1 || backup.Brands[0].Name != "Bosch" {
		t.Fatalf("brands = %+v", backup.Brands)
	}
}

func TestValidateBackupOmittedArraysAreEmpty(t *testing.T) {
	env := setup(t)
	backup, err := env.backup.ValidateBackupFile([]byte(`{"version": "1"}`))
	if err != nil {
		t.Fatalf("minimal file must validate: %v", err)
	}
	if len(backup.Parts) != 0 || len(backup.Sales) != 0 {
		t.Fatal("omitted arrays must be empty")
	}
}

func TestImportIsFullReplace(t *testing.T) {
	env := setup(t)
	env.createPart(t, "Old Part", "OLD-1", 1, 1, 2)

	newPart := model.Part{Name: "New Part", SKU: "NEW-1", Quantity: 3}
	payload, err := json.Marshal(map[string]any{
		"version": "1",
		"parts":   []model.Part{newPart},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := env.backup.ImportJSON(payload); err != nil {
		t.Fatalf("import: %v", err)
	}

	parts, err := env.inv.ListParts(listAll())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(parts) != 1 || parts[0].SKU != "NEW-1" {
		t.Fatalf("import must clear before adding, got %+v", parts)
	}
}
