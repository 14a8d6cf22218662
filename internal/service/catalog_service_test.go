package service

import (
	"errors"
	"testing"
)

func TestDeleteBrandBlockedWhileReferenced(t *testing.T) {
	env := setup(t)
	brand, err := env.catalog.CreateBrand("Bosch")
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	part := env.createPart(t, "Brake Pad", "BP-001", 10, 100, 150)
	if _, err := env.inv.UpdatePart(part.ID, PartChanges{BrandID: &brand.ID}); err != nil {
		t.Fatalf("link brand: %v", err)
	}

	err = env.catalog.DeleteBrand(brand.ID)
	var ref *ReferencedError
	if !errors.As(err, &ref) {
		t.Fatalf("expected ReferencedError, got %v", err)
	}
	if ref.Count != 1 {
		t.Fatalf("dependent count = %d, want 1", ref.Count)
	}

	// Brand must still exist.
	brands, err := env.catalog.ListBrands()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(brands) != 1 {
		t.Fatalf("brand was removed despite references")
	}

	// Unlink, then the delete goes through.
	if ok, err := env.inv.DeletePart(part.ID); err != nil || !ok {
		t.Fatalf("delete part: %v", err)
	}
	if err := env.catalog.DeleteBrand(brand.ID); err != nil {
		t.Fatalf("delete brand after unlink: %v", err)
	}
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	env := setup(t)
	category, err := env.catalog.CreateCategory("Brakes")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	part := env.createPart(t, "Brake Pad", "BP-001", 10, 100, 150)
	if _, err := env.inv.UpdatePart(part.ID, PartChanges{CategoryID: &category.ID}); err != nil {
		t.Fatalf("link category: %v", err)
	}

	err = env.catalog.DeleteCategory(category.ID)
	var ref *ReferencedError
	if !errors.As(err, &ref) {
		t.Fatalf("expected ReferencedError, got %v", err)
	}
	if ref.Count != 1 {
		t.Fatalf("dependent count = %d, want 1", ref.Count)
	}
}

func TestCreateBrandRequiresName(t *testing.T) {
	env := setup(t)
	if _, err := env.catalog.CreateBrand(""); err == nil {
		t.Fatal("expected error for empty name")
	}
}
