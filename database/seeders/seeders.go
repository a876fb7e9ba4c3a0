package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/rbac"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	Register("delivery_types", seedDeliveryTypes)
	Register("admin_user", seedAdmin)
	Register("demo_catalog", seedDemoCatalog)
}

func seedDeliveryTypes(ctx context.Context, db *gorm.DB) error {
	repo := repositories.NewDeliveryTypeRepository(orm.Use(db))
	for _, name := range []string{models.PendingDeliveryType, "standard", "express"} {
		if err := repo.Ensure(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// seedAdmin creates the ADMIN_EMAIL account when both ADMIN_EMAIL and
// ADMIN_PASSWORD are set.
func seedAdmin(ctx context.Context, db *gorm.DB) error {
	email, password := config.Get("ADMIN_EMAIL", ""), config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}
	_, err := services.NewAuthService(orm.Use(db)).CreateUser(ctx, services.CreateUserInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     rbac.RoleAdmin,
	})
	if errors.Is(err, services.ErrDuplicate) {
		return nil
	}
	return err
}

// seedDemoCatalog fills an empty catalogue with a few products.
func seedDemoCatalog(ctx context.Context, db *gorm.DB) error {
	q := orm.Use(db)
	n, err := repositories.NewCategoryRepository(q).Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	catalog := services.NewCatalogService(q)
	electronics, err := catalog.CreateCategory(ctx, services.CategoryInput{EnCategoryName: "Electronics", ArCategoryName: "إلكترونيات"})
	if err != nil {
		return err
	}
	brand, err := catalog.CreateBrand(ctx, services.BrandInput{CategoryID: electronics.ID, EnBrandName: "Souq Basics", ArBrandName: "أساسيات سوق"})
	if err != nil {
		return err
	}
	color, err := catalog.CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Color", ArAttributeName: "اللون"})
	if err != nil {
		return err
	}

	products := services.NewProductService(q)
	demo := []struct {
		en, ar    string
		price     string
		off       string
		quantity  int
		deal, hot bool
	}{
		{"Wireless Earbuds", "سماعات لاسلكية", "199.00", "10", 50, true, false},
		{"Phone Charger", "شاحن هاتف", "49.00", "0", 120, false, true},
		{"Smart Watch", "ساعة ذكية", "599.00", "25", 15, true, true},
	}
	for _, d := range demo {
		price := decimal.RequireFromString(d.price)
		qty := d.quantity
		_, err := products.Create(ctx, services.ProductInput{
			CategoryID:         electronics.ID,
			BrandID:            brand.ID,
			EnName:             d.en,
			ArName:             d.ar,
			ActualPrice:        &price,
			OffPercentageValue: decimal.RequireFromString(d.off),
			Cost:               price.Div(decimal.NewFromInt(2)).Round(2),
			Quantity:           &qty,
			Attributes:         models.AttributeList{{AttributeID: color.ID, Values: []string{"Black", "White"}}},
			IsDeal:             d.deal,
			IsHotDeal:          d.hot,
			MaxQuantityPerUser: 3,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
