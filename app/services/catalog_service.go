package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/collection"
	"github.com/shashiranjanraj/souq/pkg/event"
	"github.com/shashiranjanraj/souq/pkg/orm"
)

// EventCatalogChanged is fired after any category, brand or attribute write.
const EventCatalogChanged = "catalog.changed"

type CategoryInput struct {
	EnCategoryName string `json:"en_category_name" validate:"required,max=255"`
	ArCategoryName string `json:"ar_category_name" validate:"required,max=255"`
}

type BrandInput struct {
	CategoryID  uint   `json:"category_id"   validate:"required"`
	EnBrandName string `json:"en_brand_name" validate:"required,max=255"`
	ArBrandName string `json:"ar_brand_name" validate:"required,max=255"`
}

type AttributeInput struct {
	EnAttributeName string `json:"en_attribute_name" validate:"required,max=255"`
	ArAttributeName string `json:"ar_attribute_name" validate:"required,max=255"`
}

// CategoryWithBrands is the storefront navigation tree.
type CategoryWithBrands struct {
	models.Category
	Brands []models.Brand `json:"brands"`
}

// CatalogService manages categories, brands and attributes.
type CatalogService struct {
	categories *repositories.CategoryRepository
	brands     *repositories.BrandRepository
	attributes *repositories.AttributeRepository
}

func NewCatalogService(db *orm.Query) *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(db),
		brands:     repositories.NewBrandRepository(db),
		attributes: repositories.NewAttributeRepository(db),
	}
}

func changed(err error) error {
	if err == nil {
		event.Fire(EventCatalogChanged, nil)
	}
	return err
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx, "")
}

func (s *CatalogService) Category(ctx context.Context, id uint) (models.Category, error) {
	c, err := s.categories.Find(ctx, id)
	return c, translate(err)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	c := models.Category{EnCategoryName: in.EnCategoryName, ArCategoryName: in.ArCategoryName}
	err := s.categories.Create(ctx, &c)
	return c, changed(translate(err))
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (models.Category, error) {
	c, err := s.categories.Find(ctx, id)
	if err != nil {
		return c, translate(err)
	}
	c.EnCategoryName, c.ArCategoryName = in.EnCategoryName, in.ArCategoryName
	err = s.categories.Save(ctx, &c)
	return c, changed(translate(err))
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return changed(deleted(s.categories.Delete(ctx, id)))
}

// CategoryTree returns every category with its brands.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]CategoryWithBrands, error) {
	categories, err := s.categories.All(ctx, "")
	if err != nil {
		return nil, err
	}
	brands, err := s.brands.All(ctx, "")
	if err != nil {
		return nil, err
	}

	byCategory := collection.GroupBy(brands, func(b models.Brand) uint { return b.CategoryID })
	out := make([]CategoryWithBrands, 0, len(categories))
	for _, c := range categories {
		bs := byCategory[c.ID]
		if bs == nil {
			bs = []models.Brand{}
		}
		out = append(out, CategoryWithBrands{Category: c, Brands: bs})
	}
	return out, nil
}

// ── Brands ───────────────────────────────────────────────────────────────────

func (s *CatalogService) Brands(ctx context.Context) ([]models.Brand, error) {
	return s.brands.All(ctx, "")
}

func (s *CatalogService) Brand(ctx context.Context, id uint) (models.Brand, error) {
	b, err := s.brands.Find(ctx, id)
	return b, translate(err)
}

// BrandsByCategory returns ErrNotFound when the category itself is missing.
func (s *CatalogService) BrandsByCategory(ctx context.Context, categoryID uint) ([]models.Brand, error) {
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.brands.ByCategory(ctx, categoryID)
}

func (s *CatalogService) CreateBrand(ctx context.Context, in BrandInput) (models.Brand, error) {
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return models.Brand{}, err
	}
	b := models.Brand{CategoryID: in.CategoryID, EnBrandName: in.EnBrandName, ArBrandName: in.ArBrandName}
	err := s.brands.Create(ctx, &b)
	return b, changed(translate(err))
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, in BrandInput) (models.Brand, error) {
	b, err := s.brands.Find(ctx, id)
	if err != nil {
		return b, translate(err)
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return b, err
	}
	b.CategoryID, b.EnBrandName, b.ArBrandName = in.CategoryID, in.EnBrandName, in.ArBrandName
	err = s.brands.Save(ctx, &b)
	return b, changed(translate(err))
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	return changed(deleted(s.brands.Delete(ctx, id)))
}

func (s *CatalogService) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return nil
}

// ── Attributes ───────────────────────────────────────────────────────────────

func (s *CatalogService) Attributes(ctx context.Context) ([]models.Attribute, error) {
	return s.attributes.All(ctx, "")
}

func (s *CatalogService) Attribute(ctx context.Context, id uint) (models.Attribute, error) {
	a, err := s.attributes.Find(ctx, id)
	return a, translate(err)
}

func (s *CatalogService) CreateAttribute(ctx context.Context, in AttributeInput) (models.Attribute, error) {
	a := models.Attribute{EnAttributeName: in.EnAttributeName, ArAttributeName: in.ArAttributeName}
	err := s.attributes.Create(ctx, &a)
	return a, changed(translate(err))
}

func (s *CatalogService) UpdateAttribute(ctx context.Context, id uint, in AttributeInput) (models.Attribute, error) {
	a, err := s.attributes.Find(ctx, id)
	if err != nil {
		return a, translate(err)
	}
	a.EnAttributeName, a.ArAttributeName = in.EnAttributeName, in.ArAttributeName
	err = s.attributes.Save(ctx, &a)
	return a, changed(translate(err))
}

func (s *CatalogService) DeleteAttribute(ctx context.Context, id uint) error {
	return changed(deleted(s.attributes.Delete(ctx, id)))
}

// deleted turns a "nothing removed" result into ErrNotFound.
func deleted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
