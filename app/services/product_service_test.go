package services_test

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/storage"
	"github.com/shashiranjanraj/souq/pkg/validate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCreatedProductsGetUniqueSKUs(t *testing.T) {
	f := newFixture(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p := f.product(t, "10", 1, 1)
		assert.Regexp(t, skuPattern, p.SKU)
		assert.False(t, seen[p.SKU], "duplicate sku %s", p.SKU)
		seen[p.SKU] = true
	}
}

func TestSKUFallsBackToLongerCodes(t *testing.T) {
	f := newFixture(t)
	calls := map[int]int{}
	f.products.NewSKU = func(n int) (string, error) {
		calls[n]++
		return strings.Repeat("A", n), nil
	}

	first := f.product(t, "10", 1, 1)
	assert.Equal(t, "AAAAAAAA", first.SKU)

	second := f.product(t, "10", 1, 1)
	assert.Equal(t, "AAAAAAAAAAAA", second.SKU)
	assert.Equal(t, 11, calls[8])

	_, err := f.products.Create(context.Background(), f.input("10", 1, 1))
	assert.ErrorIs(t, err, services.ErrSKUExhausted)
	assert.Equal(t, int64(2), f.count(t, &models.Product{}))
}

func TestPriceIsDerivedFromDiscount(t *testing.T) {
	f := newFixture(t)
	in := f.input("200", 1, 1)
	in.OffPercentageValue = decimal.NewFromInt(25)

	p, err := f.products.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(150)), p.Price.String())

	stored := f.reload(t, p.ID)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, stored.MaxQuantityPerUser)
}

func TestCreateRejectsUnknownBrand(t *testing.T) {
	f := newFixture(t)
	in := f.input("10", 1, 1)
	in.BrandID = 999

	_, err := f.products.Create(context.Background(), in)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCreateAndUpdateRejectUnknownAttributes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	color, err := services.NewCatalogService(f.db).CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Color", ArAttributeName: "اللون"})
	require.NoError(t, err)

	in := f.input("10", 1, 1)
	in.Attributes = models.AttributeList{
		{AttributeID: color.ID, Values: []string{"Red"}},
		{AttributeID: 999, Values: []string{"Red"}},
	}
	_, err = f.products.Create(ctx, in)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Zero(t, f.count(t, &models.Product{}))

	p := f.product(t, "10", 1, 1)
	_, err = f.products.Update(ctx, p.ID, in)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, f.reload(t, p.ID).Attributes)
}

func TestMaxQuantityPerUserIsBounded(t *testing.T) {
	f := newFixture(t)

	in := f.input("10", 1, 1<<40)
	errs := validate.Struct(in)
	assert.Contains(t, errs, "max_quantity_per_user")

	in.MaxQuantityPerUser = 100
	assert.Empty(t, validate.Struct(in))
}

func TestUpdateReplacesFieldsButKeepsSKUAndSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "10", 5, 3)

	_, err := f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items:     []services.CheckoutItem{{ProductID: p.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)

	in := f.input("30", 40, 2)
	in.EnName = "Phone Pro"
	in.Images = models.ImageList{"products/a.png", "products/b.png"}
	updated, err := f.products.Update(ctx, p.ID, in)
	require.NoError(t, err)

	stored := f.reload(t, p.ID)
	assert.Equal(t, p.SKU, updated.SKU)
	assert.Equal(t, p.SKU, stored.SKU)
	assert.Equal(t, 2, stored.Sold)
	assert.Equal(t, 40, stored.Quantity)
	assert.Equal(t, "Phone Pro", stored.EnName)
	assert.Equal(t, models.ImageList{"products/a.png", "products/b.png"}, stored.Images)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(30)))

	_, err = f.products.Update(ctx, 999, in)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeactivateAndReactivate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	keep := f.product(t, "10", 1, 1)
	hide := f.product(t, "20", 1, 1)

	_, err := f.products.SetActive(ctx, hide.ID, false)
	require.NoError(t, err)

	active, err := f.products.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	inactive, err := f.products.Deactivated(ctx)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, hide.ID, inactive[0].ID)

	p, err := f.products.SetActive(ctx, hide.ID, true)
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.True(t, f.reload(t, hide.ID).IsActive)

	_, err = f.products.SetActive(ctx, 999, false)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	disk := storage.NewLocalDisk(t.TempDir(), "/storage")
	f.products.Disk = func() storage.Disk { return disk }

	img, err := f.products.UploadImage(ctx, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.Key, "products/"))
	assert.True(t, strings.HasSuffix(img.Key, ".png"))
	assert.Equal(t, "/storage/"+img.Key, img.URL)

	ok, err := disk.Exists(ctx, img.Key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.products.DeleteImage(ctx, img.Key))
	assert.ErrorIs(t, f.products.DeleteImage(ctx, img.Key), services.ErrNotFound)
	assert.ErrorIs(t, f.products.DeleteImage(ctx, "../etc/passwd"), storage.ErrInvalidPath)
	assert.ErrorIs(t, f.products.DeleteImage(ctx, "avatars/x.png"), storage.ErrInvalidPath)
}

func TestImageUploadRejectsNonImages(t *testing.T) {
	f := newFixture(t)
	disk := storage.NewLocalDisk(t.TempDir(), "/storage")
	f.products.Disk = func() storage.Disk { return disk }

	_, err := f.products.UploadImage(context.Background(), strings.NewReader("plain text, not an image"))
	assert.ErrorIs(t, err, services.ErrUnsupportedImage)

	f.products.Disk = func() storage.Disk { return nil }
	_, err = f.products.UploadImage(context.Background(), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
}
