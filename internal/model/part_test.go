package model

import "testing"

func TestStockStatus(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		min      int
		want     StockStatus
	}{
		{"out of stock", 0, 10, StockCritical},
		{"out of stock with no threshold", 0, 0, StockCritical},
		{"below half threshold", 4, 10, StockWarning},
		{"just under half", 4, 9, StockWarning},
		{"at half threshold", 5, 10, StockNear},
		{"at threshold", 10, 10, StockNear},
		{"above threshold", 11, 10, StockOK},
		{"plenty", 100, 10, StockOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Part{Quantity: c.quantity, MinStockLevel: c.min}
			if got := p.Status(); got != c.want {
				t.Fatalf("Status(q=%d, min=%d) = %s, want %s", c.quantity, c.min, got, c.want)
			}
		})
	}
}

func TestIsLowStock(t *testing.T) {
	p := Part{Quantity: 10, MinStockLevel: 10}
	if !p.IsLowStock() {
		t.Fatal("quantity at threshold is low stock")
	}
	p.Quantity = 11
	if p.IsLowStock() {
		t.Fatal("quantity above threshold is not low stock")
	}
}

func TestActionCategory(t *testing.T) {
	cases := map[Action]ActivityCategory{
		ActionCreate:  CategoryInventory,
		ActionUpdate:  CategoryInventory,
		ActionDelete:  CategoryInventory,
		ActionSale:    CategorySales,
		ActionBackup:  CategorySystem,
		ActionRestore: CategorySystem,
		ActionSync:    CategorySystem,
	}
	for action, want := range cases {
		if got := action.Category(); got != want {
			t.Fatalf("Category(%s) = %s, want %s", action, got, want)
		}
	}
}
