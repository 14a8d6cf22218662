package service

import (
	"fmt"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
)

// ReferencedError blocks deleting a brand or category that parts still
// point at, naming how many.
type ReferencedError struct {
	Entity model.EntityType
	Name   string
	Count  int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("cannot delete %s '%s': %d part(s) still reference it", e.Entity, e.Name, e.Count)
}

type CatalogService interface {
	CreateBrand(name string) (*model.Brand, error)
	ListBrands() ([]model.Brand, error)
	DeleteBrand(id uuid.UUID) error
	CreateCategory(name string) (*model.Category, error)
	ListCategories() ([]model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type catalogService struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	partRepo     repository.PartRepository
	activity     ActivityLogService
}

func NewCatalogService(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository, partRepo repository.PartRepository, activity ActivityLogService) CatalogService {
	return &catalogService{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		partRepo:     partRepo,
		activity:     activity,
	}
}

func (s *catalogService) CreateBrand(name string) (*model.Brand, error) {
	if name == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	brand := &model.Brand{Name: name}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	if _, err := s.activity.Log(model.ActionCreate, model.EntityBrand, &brand.ID,
		fmt.Sprintf("Added brand '%s'", name), nil); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) ListBrands() ([]model.Brand, error) {
	return s.brandRepo.FindAll()
}

// DeleteBrand refuses while any part references the brand. The check
// lives here in the service layer; the store holds no foreign keys for
// it.
func (s *catalogService) DeleteBrand(id uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		return err
	}

	count, err := s.partRepo.CountByBrand(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ReferencedError{Entity: model.EntityBrand, Name: brand.Name, Count: count}
	}

	if err := s.brandRepo.Delete(id); err != nil {
		return err
	}
	_, err = s.activity.Log(model.ActionDelete, model.EntityBrand, &id,
		fmt.Sprintf("Deleted brand '%s'", brand.Name), nil)
	return err
}

func (s *catalogService) CreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	if _, err := s.activity.Log(model.ActionCreate, model.EntityCategory, &category.ID,
		fmt.Sprintf("Added category '%s'", name), nil); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return err
	}

	count, err := s.partRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ReferencedError{Entity: model.EntityCategory, Name: category.Name, Count: count}
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	_, err = s.activity.Log(model.ActionDelete, model.EntityCategory, &id,
		fmt.Sprintf("Deleted category '%s'", category.Name), nil)
	return err
}
