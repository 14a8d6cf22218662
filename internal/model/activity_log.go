package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionSale    Action = "sale"
	ActionBackup  Action = "backup"
	ActionRestore Action = "restore"
	ActionSync    Action = "sync"
)

type EntityType string

const (
	EntityPart     EntityType = "part"
	EntitySale     EntityType = "sale"
	EntityBrand    EntityType = "brand"
	EntityCategory EntityType = "category"
	EntitySettings EntityType = "settings"
	EntityBackup   EntityType = "backup"
)

// ActivityCategory groups actions for bulk operations on the log.
type ActivityCategory string

const (
	CategoryInventory ActivityCategory = "inventory"
	CategorySales     ActivityCategory = "sales"
	CategorySystem    ActivityCategory = "system"
)

// Category maps an action to its domain grouping: create/update/delete
// are inventory actions, sale is a sales action, the rest are system.
func (a Action) Category() ActivityCategory {
	switch a {
	case ActionSale:
		return CategorySales
	case ActionBackup, ActionRestore, ActionSync:
		return CategorySystem
	default:
		return CategoryInventory
	}
}

// CategoryActions is the inverse of Action.Category.
func CategoryActions(c ActivityCategory) []Action {
	switch c {
	case CategorySales:
		return []Action{ActionSale}
	case CategorySystem:
		return []Action{ActionBackup, ActionRestore, ActionSync}
	default:
		return []Action{ActionCreate, ActionUpdate, ActionDelete}
	}
}

// ActivityLog is an append-only audit entry. Rows are never removed;
// "deleting" one sets IsDeleted and normal views filter it out.
type ActivityLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	Action      Action         `gorm:"type:varchar(20);not null;index" json:"action" validate:"required,oneof=create update delete sale backup restore sync"`
	EntityType  EntityType     `gorm:"type:varchar(20);not null;index" json:"entity_type" validate:"required,oneof=part sale brand category settings backup"`
	EntityID    *uuid.UUID     `gorm:"type:uuid" json:"entity_id,omitempty"`
	Description string         `gorm:"type:text;not null" json:"description" validate:"required"`
	Metadata    map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	IsDeleted   bool           `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
