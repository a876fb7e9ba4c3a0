package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/internal/testdb"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixture is a migrated database with one category and one brand.
type fixture struct {
	db       *orm.Query
	category models.Category
	brand    models.Brand
	products *services.ProductService
	orders   *services.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testdb.Query(t)

	catalog := services.NewCatalogService(db)
	c, err := catalog.CreateCategory(ctx, services.CategoryInput{EnCategoryName: "Electronics", ArCategoryName: "إلكترونيات"})
	require.NoError(t, err)
	b, err := catalog.CreateBrand(ctx, services.BrandInput{CategoryID: c.ID, EnBrandName: "Acme", ArBrandName: "أكمي"})
	require.NoError(t, err)

	return &fixture{
		db:       db,
		category: c,
		brand:    b,
		products: services.NewProductService(db),
		orders:   services.NewOrderService(db),
	}
}

func (f *fixture) input(price string, quantity, maxPerUser int) services.ProductInput {
	p := decimal.RequireFromString(price)
	q := quantity
	return services.ProductInput{
		CategoryID:         f.category.ID,
		BrandID:            f.brand.ID,
		EnName:             "Phone",
		ArName:             "هاتف",
		ActualPrice:        &p,
		Quantity:           &q,
		MaxQuantityPerUser: maxPerUser,
	}
}

func (f *fixture) product(t *testing.T, price string, quantity, maxPerUser int) models.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), f.input(price, quantity, maxPerUser))
	require.NoError(t, err)
	return p
}

func (f *fixture) reload(t *testing.T, id uint) models.Product {
	t.Helper()
	p, err := f.products.Find(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	n, err := f.db.Model(model).Count()
	require.NoError(t, err)
	return n
}

func contact() services.Contact {
	return services.Contact{FullName: "Sara Ali", Phone: "+966500000000", Address: "King Fahd Rd"}
}
