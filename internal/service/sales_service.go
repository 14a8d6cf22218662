package service

import (
	"errors"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/safenum"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEmptyCart rejects a sale with no line items.
var ErrEmptyCart = errors.New("sale requires at least one item")

// UnknownPartError names a cart line whose part id does not resolve.
type UnknownPartError struct {
	PartID uuid.UUID
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("part %s not found", e.PartID)
}

// InsufficientStockError names the part whose aggregated requested
// quantity exceeds what is on hand.
type InsufficientStockError struct {
	PartID    uuid.UUID
	PartName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': requested %d, available %d",
		e.PartName, e.Requested, e.Available)
}

// SaleLine is one cart row. The same part may appear on several lines
// with different prices; all of them count against one stock pool.
type SaleLine struct {
	PartID    uuid.UUID
	Quantity  int
	UnitPrice float64
}

// CustomerInfo is the optional buyer detail stamped onto each sale row.
type CustomerInfo struct {
	Name  string
	Phone string
	Notes string
}

type SalesService interface {
	RecordSale(line SaleLine, customer CustomerInfo) (*model.Sale, error)
	RecordMultiSale(lines []SaleLine, customer CustomerInfo) ([]model.Sale, error)
	GetSalesSummary(start, end time.Time) (*repository.SalesSummary, error)
	GetTopSellingParts(start, end time.Time, limit int) ([]repository.TopSeller, error)
	ListSalesBetween(start, end time.Time) ([]model.Sale, error)
	DeleteSaleRecordOnly(id uuid.UUID) (bool, error)
}

type salesService struct {
	saleRepo repository.SaleRepository
	partRepo repository.PartRepository
	activity ActivityLogService
	db       *gorm.DB
}

func NewSalesService(saleRepo repository.SaleRepository, partRepo repository.PartRepository, activity ActivityLogService, db *gorm.DB) SalesService {
	return &salesService{
		saleRepo: saleRepo,
		partRepo: partRepo,
		activity: activity,
		db:       db,
	}
}

// RecordSale commits a single-item sale; it is the size-1 case of
// RecordMultiSale.
func (s *salesService) RecordSale(line SaleLine, customer CustomerInfo) (*model.Sale, error) {
	sales, err := s.RecordMultiSale([]SaleLine{line}, customer)
	if err != nil {
		return nil, err
	}
	return &sales[0], nil
}

// RecordMultiSale validates and commits a multi-item sale. The operation
// has exactly two terminal outcomes: an error with no side effects at
// all, or every sale row, stock decrement and the aggregate audit entry
// committed together. There is no partial-success state.
func (s *salesService) RecordMultiSale(lines []SaleLine, customer CustomerInfo) ([]model.Sale, error) {
	// 1. Empty cart, zero/negative quantities
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if safenum.ToQuantity(line.Quantity, 0) < 1 {
			return nil, fmt.Errorf("sale quantity must be at least 1 (part %s)", line.PartID)
		}
	}

	var created []model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 2. Resolve every referenced part; any miss aborts before
		// anything is processed. Reads run inside the transaction so the
		// availability check and the writes cannot interleave with
		// another commit.
		parts := make(map[uuid.UUID]*model.Part)
		for _, line := range lines {
			if _, ok := parts[line.PartID]; ok {
				continue
			}
			var part model.Part
			if err := tx.First(&part, "id = ?", line.PartID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &UnknownPartError{PartID: line.PartID}
				}
				return err
			}
			parts[line.PartID] = &part
		}

		// 3. Aggregate requested quantity per distinct part.
		requested := make(map[uuid.UUID]int)
		for _, line := range lines {
			requested[line.PartID] += safenum.ToQuantity(line.Quantity, 0)
		}

		// 4. Strict availability check, before any mutation.
		for partID, qty := range requested {
			part := parts[partID]
			if qty > part.Quantity {
				return &InsufficientStockError{
					PartID:    partID,
					PartName:  part.Name,
					Requested: qty,
					Available: part.Quantity,
				}
			}
		}

		// 5. Build and persist one sale row per line, with name/SKU and
		// cost snapshots. Amounts are always derived, never caller-supplied.
		var saleIDs []string
		var grandTotal, grandProfit float64
		for _, line := range lines {
			part := parts[line.PartID]
			qty := safenum.ToQuantity(line.Quantity, 0)
			unitPrice := safenum.ToPositive(line.UnitPrice, 0)

			sale := model.Sale{
				PartID:        part.ID,
				PartName:      part.Name,
				PartSKU:       part.SKU,
				Quantity:      qty,
				UnitPrice:     unitPrice,
				TotalAmount:   safenum.Total(qty, unitPrice),
				BuyingPrice:   part.BuyingPrice,
				Profit:        safenum.Profit(part.BuyingPrice, unitPrice, qty),
				CustomerName:  customer.Name,
				CustomerPhone: customer.Phone,
				Notes:         customer.Notes,
			}
			if err := s.saleRepo.Create(tx, &sale); err != nil {
				return err
			}
			created = append(created, sale)
			saleIDs = append(saleIDs, sale.ID.String())
			grandTotal = safenum.Add(grandTotal, sale.TotalAmount)
			grandProfit = safenum.Add(grandProfit, sale.Profit)
		}

		// 6. Apply the stock decrements. The availability check above
		// guarantees no floor clamping happens here.
		for partID, qty := range requested {
			part := parts[partID]
			if err := s.partRepo.UpdateQuantity(tx, partID, clampQuantity(part.Quantity, -qty)); err != nil {
				return err
			}
		}

		// 7. One aggregate audit entry for the whole batch.
		names := make([]string, 0, len(parts))
		for _, line := range lines {
			names = appendUnique(names, parts[line.PartID].Name)
		}
		_, err := s.activity.LogTx(tx, model.ActionSale, model.EntitySale, nil,
			fmt.Sprintf("Sold %d item(s): %s (total %.2f)", len(lines), joinNames(names), grandTotal),
			map[string]any{
				"sale_ids":     saleIDs,
				"total_amount": grandTotal,
				"total_profit": grandProfit,
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	// 8. Return the created sale records.
	return created, nil
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func (s *salesService) GetSalesSummary(start, end time.Time) (*repository.SalesSummary, error) {
	return s.saleRepo.SummaryBetween(start, end)
}

func (s *salesService) GetTopSellingParts(start, end time.Time, limit int) ([]repository.TopSeller, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.saleRepo.TopSellers(start, end, limit)
}

func (s *salesService) ListSalesBetween(start, end time.Time) ([]model.Sale, error) {
	return s.saleRepo.FindBetween(start, end)
}

// DeleteSaleRecordOnly removes a sale row WITHOUT restoring the stock it
// deducted. It exists as a manual correction tool; the operator must
// adjust stock separately via UpdateStock. Returns false when the id does
// not resolve.
func (s *salesService) DeleteSaleRecordOnly(id uuid.UUID) (bool, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if err := s.saleRepo.Delete(id); err != nil {
		return false, err
	}

	_, err = s.activity.Log(model.ActionDelete, model.EntitySale, &id,
		fmt.Sprintf("Deleted sale record for '%s' (stock not restored)", sale.PartName),
		map[string]any{"part_id": sale.PartID.String(), "quantity": sale.Quantity, "stock_restored": false})
	if err != nil {
		return false, err
	}
	return true, nil
}
