package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/locale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDetailExpandsAttributes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	catalog := services.NewCatalogService(f.db)
	color, err := catalog.CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Color", ArAttributeName: "اللون"})
	require.NoError(t, err)
	size, err := catalog.CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Size", ArAttributeName: "المقاس"})
	require.NoError(t, err)

	in := f.input("20", 9, 3)
	in.Attributes = models.AttributeList{
		{AttributeID: color.ID, Values: []string{"Red", "Blue"}},
		{AttributeID: size.ID, Values: []string{"M"}},
	}
	p, err := f.products.Create(ctx, in)
	require.NoError(t, err)

	svc := services.NewStorefrontService(f.db)
	detail, err := svc.Product(locale.WithLang(ctx, locale.Arabic), p.ID)
	require.NoError(t, err)

	require.Len(t, detail.Attributes, 2)
	assert.Equal(t, color.ID, detail.Attributes[0].AttributeID)
	assert.Equal(t, "Color", detail.Attributes[0].EnAttributeName)
	assert.Equal(t, "اللون", detail.Attributes[0].Name)
	assert.Equal(t, []string{"Red", "Blue"}, detail.Attributes[0].Values)
	assert.Equal(t, []string{"M"}, detail.Attributes[1].Values)

	assert.Equal(t, "هاتف", detail.Name)
	assert.Equal(t, "إلكترونيات", detail.CategoryName)
	assert.Equal(t, "Electronics", detail.EnCategoryName)
	assert.Equal(t, "Acme", detail.EnBrandName)

	require.Len(t, detail.QuantityPrices, 3)
	assert.Equal(t, 3, detail.QuantityPrices[2].Quantity)
	assert.True(t, detail.QuantityPrices[2].Price.Equal(decimal.NewFromInt(60)))
}

func TestProductDetailKeepsSelectionsOfDeletedAttributes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	catalog := services.NewCatalogService(f.db)
	color, err := catalog.CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Color", ArAttributeName: "اللون"})
	require.NoError(t, err)

	in := f.input("10", 1, 1)
	in.Attributes = models.AttributeList{{AttributeID: color.ID, Values: []string{"Red"}}}
	p, err := f.products.Create(ctx, in)
	require.NoError(t, err)
	require.NoError(t, catalog.DeleteAttribute(ctx, color.ID))

	detail, err := services.NewStorefrontService(f.db).Product(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Attributes, 1)
	assert.Equal(t, color.ID, detail.Attributes[0].AttributeID)
	assert.Equal(t, []string{"Red"}, detail.Attributes[0].Values)
	assert.Empty(t, detail.Attributes[0].EnAttributeName)
	assert.Empty(t, detail.Attributes[0].Name)
}

func TestProductDetailHidesInactiveProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "10", 1, 1)
	_, err := f.products.SetActive(ctx, p.ID, false)
	require.NoError(t, err)

	svc := services.NewStorefrontService(f.db)
	_, err = svc.Product(ctx, p.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.Product(ctx, 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCorruptAttributesFailLoudly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "10", 1, 1)
	require.NoError(t, f.db.Gorm().Exec("UPDATE products SET attributes = ? WHERE id = ?", "{not json", p.ID).Error)

	_, err := services.NewStorefrontService(f.db).Product(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrCorruptData)
}

func TestStorefrontListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var deals, hot []uint
	for i := 0; i < 12; i++ {
		in := f.input("10", 5, 1)
		in.IsDeal = i%3 == 0
		in.IsHotDeal = i%4 == 0
		p, err := f.products.Create(ctx, in)
		require.NoError(t, err)
		if in.IsDeal {
			deals = append([]uint{p.ID}, deals...)
		}
		if in.IsHotDeal {
			hot = append([]uint{p.ID}, hot...)
		}
	}
	hidden := f.product(t, "10", 5, 1)
	_, err := f.products.SetActive(ctx, hidden.ID, false)
	require.NoError(t, err)

	svc := services.NewStorefrontService(f.db)

	recommended, err := svc.Recommended(ctx)
	require.NoError(t, err)
	require.Len(t, recommended, 10)
	for i := 1; i < len(recommended); i++ {
		assert.Greater(t, recommended[i-1].ID, recommended[i].ID)
	}
	assert.NotEqual(t, hidden.ID, recommended[0].ID)
	assert.Equal(t, "Phone", recommended[0].Name)

	superDeals, err := svc.SuperDeals(ctx)
	require.NoError(t, err)
	assert.Equal(t, deals, ids(superDeals))

	hotDeals, err := svc.HotDeals(ctx)
	require.NoError(t, err)
	assert.Equal(t, hot, ids(hotDeals))
}

func ids(cards []services.ProductCard) []uint {
	out := make([]uint, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestQuantityPrices(t *testing.T) {
	got := services.QuantityPrices(decimal.RequireFromString("2.50"), 0)
	require.Len(t, got, 1)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("2.5")))

	got = services.QuantityPrices(decimal.NewFromInt(1), 1<<45)
	require.Len(t, got, services.MaxQuantityPrices)
	assert.Equal(t, services.MaxQuantityPrices, got[len(got)-1].Quantity)
}
