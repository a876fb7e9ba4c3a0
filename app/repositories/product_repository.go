package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
)

// ProductRow is a product joined with its category and brand names, as
// shown on the storefront.
type ProductRow struct {
	ID                 uint                 `json:"id"`
	SKU                string               `json:"sku"`
	CategoryID         uint                 `json:"category_id"`
	BrandID            uint                 `json:"brand_id"`
	EnName             string               `json:"en_name"`
	ArName             string               `json:"ar_name"`
	EnDescription      string               `json:"en_description"`
	ArDescription      string               `json:"ar_description"`
	ActualPrice        decimal.Decimal      `json:"actual_price"`
	OffPercentageValue decimal.Decimal      `json:"off_percentage_value"`
	Price              decimal.Decimal      `json:"price"`
	Attributes         models.AttributeList `json:"attributes"`
	Quantity           int                  `json:"quantity"`
	Sold               int                  `json:"sold"`
	Image              string               `json:"image"`
	Images             models.ImageList     `json:"images"`
	IsDeal             bool                 `json:"is_deal"`
	IsHotDeal          bool                 `json:"is_hot_deal"`
	VatIncluded        bool                 `json:"vat_included"`
	MaxQuantityPerUser int                  `json:"max_quantity_per_user"`
	EnCategoryName     string               `json:"en_category_name"`
	ArCategoryName     string               `json:"ar_category_name"`
	EnBrandName        string               `json:"en_brand_name"`
	ArBrandName        string               `json:"ar_brand_name"`
	CreatedAt          time.Time            `json:"created_at"`
}

const productRowColumns = `p.id, p.sku, p.category_id, p.brand_id, p.en_name, p.ar_name,
	p.en_description, p.ar_description, p.actual_price, p.off_percentage_value, p.price,
	p.attributes, p.quantity, p.sold, p.image, p.images, p.is_deal, p.is_hot_deal,
	p.vat_included, p.max_quantity_per_user, p.created_at,
	COALESCE(c.en_category_name, '') AS en_category_name,
	COALESCE(c.ar_category_name, '') AS ar_category_name,
	COALESCE(b.en_brand_name, '') AS en_brand_name,
	COALESCE(b.ar_brand_name, '') AS ar_brand_name`

// StockRow is a product summary used by the manager dashboard.
type StockRow struct {
	ID       uint   `json:"id"`
	SKU      string `json:"sku"`
	EnName   string `json:"en_name"`
	ArName   string `json:"ar_name"`
	Quantity int    `json:"quantity"`
	Sold     int    `json:"sold"`
}

// RowFilter narrows a storefront listing.
type RowFilter struct {
	DealsOnly    bool
	HotDealsOnly bool
	Limit        int
}

type ProductRepository struct {
	Repository[models.Product]
}

func NewProductRepository(q *orm.Query) *ProductRepository {
	return &ProductRepository{newRepository[models.Product](q)}
}

// ListByActive returns active or deactivated products, newest first.
func (r *ProductRepository) ListByActive(ctx context.Context, active bool) ([]models.Product, error) {
	var products []models.Product
	err := r.model(ctx).Where("is_active = ?", active).Order("id DESC").Get(&products)
	return products, err
}

func (r *ProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	return r.model(ctx).Where("sku = ?", sku).Exists()
}

// SetActive flips is_active on one product.
func (r *ProductRepository) SetActive(ctx context.Context, id uint, active bool) error {
	_, err := r.model(ctx).Where("id = ?", id).Updates(map[string]interface{}{"is_active": active})
	return err
}

// Decrement moves n units from quantity to sold, but only while the product
// is active and has at least n in stock. It reports whether the row changed.
func (r *ProductRepository) Decrement(ctx context.Context, id uint, n int) (bool, error) {
	affected, err := r.model(ctx).
		Where("id = ? AND is_active = ? AND quantity >= ?", id, true, n).
		Updates(map[string]interface{}{
			"quantity": orm.Expr("quantity - ?", n),
			"sold":     orm.Expr("sold + ?", n),
		})
	return affected > 0, err
}

func (r *ProductRepository) rows(ctx context.Context) *orm.Query {
	return r.q.WithContext(ctx).
		Table("products AS p").
		Select(productRowColumns).
		Joins("LEFT JOIN categories AS c ON c.id = p.category_id").
		Joins("LEFT JOIN brands AS b ON b.id = p.brand_id").
		Where("p.is_active = ?", true)
}

// Rows lists active products newest first, read through the cache under key.
func (r *ProductRepository) Rows(ctx context.Context, f RowFilter, key string, ttl time.Duration) ([]ProductRow, error) {
	q := r.rows(ctx)
	if f.DealsOnly {
		q = q.Where("p.is_deal = ?", true)
	}
	if f.HotDealsOnly {
		q = q.Where("p.is_hot_deal = ?", true)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	rows := []ProductRow{}
	err := q.Order("p.id DESC").Cache(key, ttl, &rows)
	return rows, err
}

// Row loads one active product projection; orm.ErrNotFound when missing or
// inactive.
func (r *ProductRepository) Row(ctx context.Context, id uint, key string, ttl time.Duration) (ProductRow, error) {
	var rows []ProductRow
	if err := r.rows(ctx).Where("p.id = ?", id).Limit(1).Cache(key, ttl, &rows); err != nil {
		return ProductRow{}, err
	}
	if len(rows) == 0 {
		return ProductRow{}, orm.ErrNotFound
	}
	return rows[0], nil
}

// CountByActive counts active or deactivated products.
func (r *ProductRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	return r.model(ctx).Where("is_active = ?", active).Count()
}

// UnitsSold sums the sold counter over all products.
func (r *ProductRepository) UnitsSold(ctx context.Context) (int64, error) {
	var out struct{ Total int64 }
	err := r.model(ctx).Select("COALESCE(SUM(sold), 0) AS total").Scan(&out)
	return out.Total, err
}

// LowStock lists active products with quantity at or below threshold.
func (r *ProductRepository) LowStock(ctx context.Context, threshold, limit int) ([]StockRow, error) {
	rows := []StockRow{}
	err := r.model(ctx).
		Select("id, sku, en_name, ar_name, quantity, sold").
		Where("is_active = ? AND quantity <= ?", true, threshold).
		Order("quantity ASC, id ASC").
		Limit(limit).
		Scan(&rows)
	return rows, err
}

// TopSold lists the best selling products.
func (r *ProductRepository) TopSold(ctx context.Context, limit int) ([]StockRow, error) {
	rows := []StockRow{}
	err := r.model(ctx).
		Select("id, sku, en_name, ar_name, quantity, sold").
		Where("sold > 0").
		Order("sold DESC, id ASC").
		Limit(limit).
		Scan(&rows)
	return rows, err
}
