package model

import "github.com/google/uuid"

// Sale is an immutable record of one part sold in one transaction line.
// Part name/SKU and buying price are snapshots captured at sale time so
// later part edits never rewrite history. TotalAmount and Profit are
// always derived by the sales service, never supplied by callers.
type Sale struct {
	BaseModel
	PartID        uuid.UUID `gorm:"type:uuid;not null;index" json:"part_id"`
	PartName      string    `gorm:"type:varchar(255);not null" json:"part_name"`
	PartSKU       string    `gorm:"type:varchar(100);not null" json:"part_sku"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"required,gte=1"`
	UnitPrice     float64   `gorm:"not null" json:"unit_price" validate:"gte=0"`
	TotalAmount   float64   `gorm:"not null" json:"total_amount"`
	BuyingPrice   float64   `gorm:"not null" json:"buying_price"`
	Profit        float64   `gorm:"not null" json:"profit"`
	CustomerName  string    `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
}
