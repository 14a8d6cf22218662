package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
)

// BackupFile is the validated, coerced form of a backup. Export produces
// it and Import consumes it; ValidateBackupFile turns raw bytes into one.
type BackupFile struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	Parts        []model.Part        `json:"parts,omitempty"`
	Brands       []model.Brand       `json:"brands,omitempty"`
	Categories   []model.Category    `json:"categories,omitempty"`
	Sales        []model.Sale        `json:"sales,omitempty"`
	ActivityLogs []model.ActivityLog `json:"activityLogs,omitempty"`
	Settings     []model.Setting     `json:"settings,omitempty"`
}

// flexVersion accepts a string or numeric version tag and coerces it to
// a string.
type flexVersion string

func (v *flexVersion) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = flexVersion(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = flexVersion(n.String())
		return nil
	}
	return fmt.Errorf("version must be a string or number")
}

// flexTime accepts string, numeric (unix seconds or milliseconds) or
// already-normalized date representations. Hand-edited backups carry all
// three.
type flexTime struct {
	time.Time
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		for _, layout := range flexTimeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				t.Time = ts
				return nil
			}
		}
		return fmt.Errorf("unrecognized date %q", s)
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		// Values past the year 33658 in seconds are millisecond stamps.
		if n > 1e12 {
			t.Time = time.UnixMilli(int64(n))
		} else {
			t.Time = time.Unix(int64(n), 0)
		}
		return nil
	}
	return fmt.Errorf("date must be a string or number")
}

// backupEnvelope is the loose top-level wire shape. Record arrays stay
// raw so each element validates individually with an indexed error path.
type backupEnvelope struct {
	Version      flexVersion       `json:"version"`
	ExportedAt   flexTime          `json:"exportedAt"`
	Parts        []json.RawMessage `json:"parts"`
	Brands       []json.RawMessage `json:"brands"`
	Categories   []json.RawMessage `json:"categories"`
	Sales        []json.RawMessage `json:"sales"`
	ActivityLogs []json.RawMessage `json:"activityLogs"`
	Settings     []json.RawMessage `json:"settings"`
}

// Per-record wire shapes. Unknown extra fields are tolerated for forward
// compatibility; the tagged fields must type-check and stay in bounds.

type partRecord struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name" validate:"required,max=255"`
	SKU           string     `json:"sku" validate:"required,max=100"`
	BrandID       *uuid.UUID `json:"brand_id"`
	CategoryID    *uuid.UUID `json:"category_id"`
	UnitType      string     `json:"unit_type" validate:"omitempty,oneof=piece set pair box custom"`
	CustomUnit    string     `json:"custom_unit" validate:"max=50"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	MinStockLevel int        `json:"min_stock_level" validate:"gte=0"`
	BuyingPrice   float64    `json:"buying_price" validate:"gte=0"`
	SellingPrice  float64    `json:"selling_price" validate:"gte=0"`
	Location      string     `json:"location" validate:"max=1000"`
	Notes         string     `json:"notes" validate:"max=10000"`
	Images        []string   `json:"images" validate:"max=5,dive,max=2000000"`
	IsDemoData    bool       `json:"is_demo_data"`
	CreatedAt     flexTime   `json:"created_at"`
	UpdatedAt     flexTime   `json:"updated_at"`
}

func (r partRecord) toModel() model.Part {
	unit := model.UnitType(r.UnitType)
	if unit == "" {
		unit = model.UnitPiece
	}
	return model.Part{
		BaseModel:     model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time},
		Name:          r.Name,
		SKU:           r.SKU,
		BrandID:       r.BrandID,
		CategoryID:    r.CategoryID,
		UnitType:      unit,
		CustomUnit:    r.CustomUnit,
		Quantity:      r.Quantity,
		MinStockLevel: r.MinStockLevel,
		BuyingPrice:   r.BuyingPrice,
		SellingPrice:  r.SellingPrice,
		Location:      r.Location,
		Notes:         r.Notes,
		Images:        r.Images,
		IsDemoData:    r.IsDemoData,
	}
}

type namedRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	CreatedAt flexTime  `json:"created_at"`
}

type saleRecord struct {
	ID            uuid.UUID `json:"id"`
	PartID        uuid.UUID `json:"part_id"`
	PartName      string    `json:"part_name" validate:"required,max=255"`
	PartSKU       string    `json:"part_sku" validate:"required,max=100"`
	Quantity      int       `json:"quantity" validate:"required,gte=1"`
	UnitPrice     float64   `json:"unit_price" validate:"gte=0"`
	TotalAmount   float64   `json:"total_amount" validate:"gte=0"`
	BuyingPrice   float64   `json:"buying_price" validate:"gte=0"`
	Profit        float64   `json:"profit"`
	CustomerName  string    `json:"customer_name" validate:"max=255"`
	CustomerPhone string    `json:"customer_phone" validate:"max=50"`
	Notes         string    `json:"notes" validate:"max=10000"`
	CreatedAt     flexTime  `json:"created_at"`
}

func (r saleRecord) toModel() model.Sale {
	return model.Sale{
		BaseModel:     model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt.Time, UpdatedAt: r.CreatedAt.Time},
		PartID:        r.PartID,
		PartName:      r.PartName,
		PartSKU:       r.PartSKU,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		TotalAmount:   r.TotalAmount,
		BuyingPrice:   r.BuyingPrice,
		Profit:        r.Profit,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}

type activityRecord struct {
	ID          uuid.UUID      `json:"id"`
	Action      string         `json:"action" validate:"required,oneof=create update delete sale backup restore sync"`
	EntityType  string         `json:"entity_type" validate:"required,oneof=part sale brand category settings backup"`
	EntityID    *uuid.UUID     `json:"entity_id"`
	Description string         `json:"description" validate:"required,max=10000"`
	Metadata    map[string]any `json:"metadata"`
	IsDeleted   bool           `json:"is_deleted"`
	CreatedAt   flexTime       `json:"created_at"`
}

func (r activityRecord) toModel() model.ActivityLog {
	return model.ActivityLog{
		ID:          r.ID,
		Action:      model.Action(r.Action),
		EntityType:  model.EntityType(r.EntityType),
		EntityID:    r.EntityID,
		Description: r.Description,
		Metadata:    r.Metadata,
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type settingRecord struct {
	Key       string   `json:"key" validate:"required,max=100"`
	Value     string   `json:"value" validate:"max=10000"`
	UpdatedAt flexTime `json:"updated_at"`
}
