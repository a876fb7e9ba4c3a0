package repositories

import (
	"context"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/pkg/collection"
	"github.com/shashiranjanraj/souq/pkg/orm"
)

type CategoryRepository struct {
	Repository[models.Category]
}

func NewCategoryRepository(q *orm.Query) *CategoryRepository {
	return &CategoryRepository{newRepository[models.Category](q)}
}

type BrandRepository struct {
	Repository[models.Brand]
}

func NewBrandRepository(q *orm.Query) *BrandRepository {
	return &BrandRepository{newRepository[models.Brand](q)}
}

// ByCategory returns the brands of one category, oldest first.
func (r *BrandRepository) ByCategory(ctx context.Context, categoryID uint) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.model(ctx).Where("category_id = ?", categoryID).Order("id ASC").Get(&brands)
	return brands, err
}

type AttributeRepository struct {
	Repository[models.Attribute]
}

func NewAttributeRepository(q *orm.Query) *AttributeRepository {
	return &AttributeRepository{newRepository[models.Attribute](q)}
}

// FindMany loads the attributes with the given ids, keyed by id.
func (r *AttributeRepository) FindMany(ctx context.Context, ids []uint) (map[uint]models.Attribute, error) {
	if len(ids) == 0 {
		return map[uint]models.Attribute{}, nil
	}
	var rows []models.Attribute
	if err := r.model(ctx).Where("id IN ?", ids).Get(&rows); err != nil {
		return nil, err
	}
	return collection.KeyBy(rows, func(a models.Attribute) uint { return a.ID }), nil
}

type DeliveryTypeRepository struct {
	Repository[models.DeliveryType]
}

func NewDeliveryTypeRepository(q *orm.Query) *DeliveryTypeRepository {
	return &DeliveryTypeRepository{newRepository[models.DeliveryType](q)}
}

func (r *DeliveryTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.model(ctx).Where("name = ?", name).Exists()
}

// Ensure inserts a delivery type called name unless one exists. Losing an
// insert race to another request is not an error.
func (r *DeliveryTypeRepository) Ensure(ctx context.Context, name string) error {
	ok, err := r.ExistsByName(ctx, name)
	if err != nil || ok {
		return err
	}
	_, err = r.q.WithContext(ctx).CreateOrSkip(&models.DeliveryType{Name: name, EnName: name, ArName: name})
	return err
}
