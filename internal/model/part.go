package model

import "github.com/google/uuid"

type UnitType string

const (
	UnitPiece  UnitType = "piece"
	UnitSet    UnitType = "set"
	UnitPair   UnitType = "pair"
	UnitBox    UnitType = "box"
	UnitCustom UnitType = "custom"
)

// MaxPartImages caps the encoded image payloads stored per part.
const MaxPartImages = 5

// StockStatus classifies how far below its threshold a part has fallen.
type StockStatus string

const (
	StockOK       StockStatus = "ok"
	StockNear     StockStatus = "near"
	StockWarning  StockStatus = "warning"
	StockCritical StockStatus = "critical"
)

type Part struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	SKU           string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku" validate:"required,max=100"`
	BrandID       *uuid.UUID `gorm:"type:uuid" json:"brand_id,omitempty"`
	CategoryID    *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	UnitType      UnitType   `gorm:"type:varchar(20);default:piece" json:"unit_type" validate:"omitempty,oneof=piece set pair box custom"`
	CustomUnit    string     `gorm:"type:varchar(50)" json:"custom_unit,omitempty"`
	Quantity      int        `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinStockLevel int        `gorm:"not null;default:0" json:"min_stock_level" validate:"gte=0"`
	BuyingPrice   float64    `gorm:"not null;default:0" json:"buying_price" validate:"gte=0"`
	SellingPrice  float64    `gorm:"not null;default:0" json:"selling_price" validate:"gte=0"`
	Location      string     `gorm:"type:text" json:"location,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	Images        []string   `gorm:"serializer:json" json:"images,omitempty" validate:"max=5"`
	IsDemoData    bool       `gorm:"default:false" json:"is_demo_data"`
}

// IsLowStock reports whether the part sits at or below its threshold.
func (p *Part) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// Status buckets the part by severity: out of stock is critical, under
// half the threshold is warning, at or under the threshold is near.
func (p *Part) Status() StockStatus {
	switch {
	case p.Quantity == 0:
		return StockCritical
	case float64(p.Quantity) < 0.5*float64(p.MinStockLevel):
		return StockWarning
	case p.Quantity <= p.MinStockLevel:
		return StockNear
	default:
		return StockOK
	}
}
