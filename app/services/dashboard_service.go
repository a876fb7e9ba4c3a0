package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold = 5
	summaryListSize   = 5
)

// AdminSummary is the admin dashboard.
type AdminSummary struct {
	Orders           map[models.OrderStatus]int64 `json:"orders"`
	TotalOrders      int64                        `json:"total_orders"`
	OrdersToday      int64                        `json:"orders_today"`
	Revenue          decimal.Decimal              `json:"revenue"`
	ActiveProducts   int64                        `json:"active_products"`
	InactiveProducts int64                        `json:"inactive_products"`
	UnitsSold        int64                        `json:"units_sold"`
}

// ManagerSummary is the catalogue overview for managers.
type ManagerSummary struct {
	Categories int64                   `json:"categories"`
	Brands     int64                   `json:"brands"`
	Attributes int64                   `json:"attributes"`
	Products   int64                   `json:"products"`
	LowStock   []repositories.StockRow `json:"low_stock"`
	TopSold    []repositories.StockRow `json:"top_sold"`
}

type DashboardService struct {
	orders     *repositories.OrderRepository
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	brands     *repositories.BrandRepository
	attributes *repositories.AttributeRepository

	Now func() time.Time
}

func NewDashboardService(db *orm.Query) *DashboardService {
	return &DashboardService{
		orders:     repositories.NewOrderRepository(db),
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		brands:     repositories.NewBrandRepository(db),
		attributes: repositories.NewAttributeRepository(db),
		Now:        time.Now,
	}
}

// Admin builds the admin summary. Revenue counts delivered orders only.
func (s *DashboardService) Admin(ctx context.Context) (AdminSummary, error) {
	var (
		out AdminSummary
		err error
	)
	if out.Orders, err = s.orders.CountByStatus(ctx); err != nil {
		return out, err
	}
	for _, n := range out.Orders {
		out.TotalOrders += n
	}

	now := s.Now()
	y, m, d := now.Date()
	if out.OrdersToday, err = s.orders.CountSince(ctx, time.Date(y, m, d, 0, 0, 0, 0, now.Location())); err != nil {
		return out, err
	}
	if out.Revenue, err = s.orders.Revenue(ctx, models.StatusDelivered); err != nil {
		return out, err
	}
	if out.ActiveProducts, err = s.products.CountByActive(ctx, true); err != nil {
		return out, err
	}
	if out.InactiveProducts, err = s.products.CountByActive(ctx, false); err != nil {
		return out, err
	}
	out.UnitsSold, err = s.products.UnitsSold(ctx)
	return out, err
}

// Manager builds the catalogue summary.
func (s *DashboardService) Manager(ctx context.Context) (ManagerSummary, error) {
	var (
		out ManagerSummary
		err error
	)
	if out.Categories, err = s.categories.Count(ctx); err != nil {
		return out, err
	}
	if out.Brands, err = s.brands.Count(ctx); err != nil {
		return out, err
	}
	if out.Attributes, err = s.attributes.Count(ctx); err != nil {
		return out, err
	}
	if out.Products, err = s.products.Count(ctx); err != nil {
		return out, err
	}
	if out.LowStock, err = s.products.LowStock(ctx, lowStockThreshold, summaryListSize); err != nil {
		return out, err
	}
	out.TopSold, err = s.products.TopSold(ctx, summaryListSize)
	return out, err
}
