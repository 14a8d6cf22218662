package service

import (
	"errors"
	"fmt"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/safenum"
	"go-parts-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryValue is the store-wide stock valuation.
type InventoryValue struct {
	TotalCost   float64 `json:"total_cost"`
	TotalRetail float64 `json:"total_retail"`
	PartCount   int     `json:"part_count"`
	UnitCount   int     `json:"unit_count"`
}

type InventoryService interface {
	CreatePart(part *model.Part) error
	UpdatePart(id uuid.UUID, changes PartChanges) (*model.Part, error)
	DeletePart(id uuid.UUID) (bool, error)
	GetPart(id uuid.UUID) (*model.Part, error)
	ListParts(filter repository.PartFilter) ([]model.Part, error)
	UpdateStock(id uuid.UUID, quantityChange int, reason string) (*model.Part, error)
	IsSKUUnique(sku string, excludeID *uuid.UUID) (bool, error)
	GetInventoryValue() (*InventoryValue, error)
}

// PartChanges carries the partial fields of an update; nil pointers leave
// the stored value untouched. Quantity is absent on purpose: it moves
// only through UpdateStock.
type PartChanges struct {
	Name          *string
	SKU           *string
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	UnitType      *model.UnitType
	CustomUnit    *string
	MinStockLevel *int
	BuyingPrice   *float64
	SellingPrice  *float64
	Location      *string
	Notes         *string
	Images        *[]string
}

type inventoryService struct {
	partRepo repository.PartRepository
	activity ActivityLogService
	db       *gorm.DB
}

func NewInventoryService(partRepo repository.PartRepository, activity ActivityLogService, db *gorm.DB) InventoryService {
	return &inventoryService{
		partRepo: partRepo,
		activity: activity,
		db:       db,
	}
}

// CreatePart assigns id and timestamps, persists and logs. It does NOT
// check SKU uniqueness; callers pre-check via IsSKUUnique so the form can
// surface the conflict before submit.
func (s *inventoryService) CreatePart(part *model.Part) error {
	if errs := validator.ValidateStruct(part); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if len(part.Images) > model.MaxPartImages {
		return fmt.Errorf("a part holds at most %d images", model.MaxPartImages)
	}

	// Prices and threshold flow through the safe layer; form input may be
	// anything.
	part.BuyingPrice = safenum.ToPositive(part.BuyingPrice, 0)
	part.SellingPrice = safenum.ToPositive(part.SellingPrice, 0)
	part.Quantity = safenum.ToQuantity(part.Quantity, 0)
	part.MinStockLevel = safenum.ToQuantity(part.MinStockLevel, 0)
	if part.UnitType == "" {
		part.UnitType = model.UnitPiece
	}

	if err := s.partRepo.Create(part); err != nil {
		return err
	}

	_, err := s.activity.Log(model.ActionCreate, model.EntityPart, &part.ID,
		fmt.Sprintf("Added part '%s' (%s)", part.Name, part.SKU),
		map[string]any{"quantity": part.Quantity, "sku": part.SKU})
	return err
}

// UpdatePart merges the given fields into the stored record and bumps
// updatedAt. A missing id returns (nil, nil); callers must check.
func (s *inventoryService) UpdatePart(id uuid.UUID, changes PartChanges) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if changes.Name != nil {
		part.Name = *changes.Name
	}
	if changes.SKU != nil {
		part.SKU = *changes.SKU
	}
	if changes.BrandID != nil {
		part.BrandID = changes.BrandID
	}
	if changes.CategoryID != nil {
		part.CategoryID = changes.CategoryID
	}
	if changes.UnitType != nil {
		part.UnitType = *changes.UnitType
	}
	if changes.CustomUnit != nil {
		part.CustomUnit = *changes.CustomUnit
	}
	if changes.MinStockLevel != nil {
		part.MinStockLevel = safenum.ToQuantity(*changes.MinStockLevel, part.MinStockLevel)
	}
	if changes.BuyingPrice != nil {
		part.BuyingPrice = safenum.ToPositive(*changes.BuyingPrice, part.BuyingPrice)
	}
	if changes.SellingPrice != nil {
		part.SellingPrice = safenum.ToPositive(*changes.SellingPrice, part.SellingPrice)
	}
	if changes.Location != nil {
		part.Location = *changes.Location
	}
	if changes.Notes != nil {
		part.Notes = *changes.Notes
	}
	if changes.Images != nil {
		if len(*changes.Images) > model.MaxPartImages {
			return nil, fmt.Errorf("a part holds at most %d images", model.MaxPartImages)
		}
		part.Images = *changes.Images
	}

	if errs := validator.ValidateStruct(part); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if err := s.partRepo.Update(part); err != nil {
		return nil, err
	}

	if _, err := s.activity.Log(model.ActionUpdate, model.EntityPart, &part.ID,
		fmt.Sprintf("Updated part '%s' (%s)", part.Name, part.SKU), nil); err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart hard-deletes the part, demo data or not. Returns false when
// the id does not resolve.
func (s *inventoryService) DeletePart(id uuid.UUID) (bool, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if err := s.partRepo.Delete(id); err != nil {
		return false, err
	}

	_, err = s.activity.Log(model.ActionDelete, model.EntityPart, &id,
		fmt.Sprintf("Deleted part '%s' (%s)", part.Name, part.SKU),
		map[string]any{"was_demo_data": part.IsDemoData})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *inventoryService) GetPart(id uuid.UUID) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return part, nil
}

func (s *inventoryService) ListParts(filter repository.PartFilter) ([]model.Part, error) {
	return s.partRepo.FindAll(filter)
}

// UpdateStock is the only sanctioned path to mutate a part's quantity.
// The delta is sanitized and the result floors at zero, so an oversized
// negative adjustment clamps silently instead of erroring. Callers that
// need strict insufficient-stock detection (the sales service) must check
// availability before calling this.
func (s *inventoryService) UpdateStock(id uuid.UUID, quantityChange int, reason string) (*model.Part, error) {
	var updated *model.Part
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var part model.Part
		if err := tx.First(&part, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("part %s not found", id)
			}
			return err
		}

		before := part.Quantity
		after := clampQuantity(before, quantityChange)

		if err := s.partRepo.UpdateQuantity(tx, id, after); err != nil {
			return err
		}
		part.Quantity = after
		updated = &part

		if reason == "" {
			reason = "Manual adjustment"
		}
		_, err := s.activity.LogTx(tx, model.ActionUpdate, model.EntityPart, &id,
			fmt.Sprintf("Stock of '%s' changed %d -> %d (%s)", part.Name, before, after, reason),
			map[string]any{"before": before, "after": after, "change": quantityChange, "reason": reason})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// clampQuantity applies a sanitized delta and floors the result at zero.
func clampQuantity(current, change int) int {
	delta := int(safenum.ToNumber(change, 0))
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// IsSKUUnique reports whether no other part holds this exact SKU.
// excludeID lets an update check against all other parts.
func (s *inventoryService) IsSKUUnique(sku string, excludeID *uuid.UUID) (bool, error) {
	count, err := s.partRepo.CountBySKU(sku, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetInventoryValue aggregates quantity*buyingPrice (cost) and
// quantity*sellingPrice (retail) across all parts.
func (s *inventoryService) GetInventoryValue() (*InventoryValue, error) {
	parts, err := s.partRepo.FindAll(repository.PartFilter{})
	if err != nil {
		return nil, err
	}

	value := &InventoryValue{PartCount: len(parts)}
	for _, p := range parts {
		value.TotalCost = safenum.Add(value.TotalCost, safenum.Total(p.Quantity, p.BuyingPrice))
		value.TotalRetail = safenum.Add(value.TotalRetail, safenum.Total(p.Quantity, p.SellingPrice))
		value.UnitCount += safenum.ToQuantity(p.Quantity, 0)
	}
	return value, nil
}
