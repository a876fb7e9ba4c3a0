package services

import (
	"context"
	"strconv"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/pkg/cache"
	"github.com/shashiranjanraj/souq/pkg/collection"
	"github.com/shashiranjanraj/souq/pkg/locale"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
)

// storefrontLimit is how many products each storefront listing shows.
const storefrontLimit = 10

// MaxQuantityPrices bounds the quantity price table of a product page.
const MaxQuantityPrices = 100

// StorefrontCachePrefix namespaces every cached storefront read.
var StorefrontCachePrefix = cache.Key("storefront")

// ProductCard is a storefront product with its names resolved to the
// request language. The en_/ar_ fields are kept alongside.
type ProductCard struct {
	repositories.ProductRow
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	BrandName    string `json:"brand_name"`
}

type ExpandedAttribute struct {
	AttributeID     uint     `json:"attribute_id"`
	EnAttributeName string   `json:"en_attribute_name"`
	ArAttributeName string   `json:"ar_attribute_name"`
	Name            string   `json:"name"`
	Values          []string `json:"values"`
}

// QuantityPrice is the price of buying Quantity units.
type QuantityPrice struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ProductDetail is the product page.
type ProductDetail struct {
	ProductCard
	Attributes     []ExpandedAttribute `json:"attributes"`
	QuantityPrices []QuantityPrice     `json:"quantity_prices"`
}

type StorefrontService struct {
	products   *repositories.ProductRepository
	attributes *repositories.AttributeRepository
	catalog    *CatalogService
}

func NewStorefrontService(db *orm.Query) *StorefrontService {
	return &StorefrontService{
		products:   repositories.NewProductRepository(db),
		attributes: repositories.NewAttributeRepository(db),
		catalog:    NewCatalogService(db),
	}
}

// Recommended returns the newest active products.
func (s *StorefrontService) Recommended(ctx context.Context) ([]ProductCard, error) {
	return s.list(ctx, "recommended", repositories.RowFilter{Limit: storefrontLimit})
}

// SuperDeals returns the newest active products flagged is_deal.
func (s *StorefrontService) SuperDeals(ctx context.Context) ([]ProductCard, error) {
	return s.list(ctx, "super-deals", repositories.RowFilter{DealsOnly: true, Limit: storefrontLimit})
}

// HotDeals returns the newest active products flagged is_hot_deal.
func (s *StorefrontService) HotDeals(ctx context.Context) ([]ProductCard, error) {
	return s.list(ctx, "hot-deals", repositories.RowFilter{HotDealsOnly: true, Limit: storefrontLimit})
}

func (s *StorefrontService) list(ctx context.Context, name string, f repositories.RowFilter) ([]ProductCard, error) {
	rows, err := s.products.Rows(ctx, f, cache.Key("storefront", name), config.CacheTTL())
	if err != nil {
		return nil, err
	}
	lang := locale.FromCtx(ctx)
	return collection.Map(rows, func(row repositories.ProductRow) ProductCard {
		return card(row, lang)
	}), nil
}

// Product returns the product page of an active product.
func (s *StorefrontService) Product(ctx context.Context, id uint) (ProductDetail, error) {
	key := cache.Key("storefront", "product", strconv.FormatUint(uint64(id), 10))
	row, err := s.products.Row(ctx, id, key, config.CacheTTL())
	if err != nil {
		return ProductDetail{}, translate(err)
	}

	ids := collection.Map(row.Attributes, func(a models.AttributeSelection) uint { return a.AttributeID })
	known, err := s.attributes.FindMany(ctx, ids)
	if err != nil {
		return ProductDetail{}, err
	}

	lang := locale.FromCtx(ctx)
	detail := ProductDetail{
		ProductCard:    card(row, lang),
		Attributes:     make([]ExpandedAttribute, 0, len(row.Attributes)),
		QuantityPrices: QuantityPrices(row.Price, row.MaxQuantityPerUser),
	}
	for _, sel := range row.Attributes {
		values := sel.Values
		if values == nil {
			values = []string{}
		}
		// a selection whose attribute was deleted later keeps its values
		// with empty names
		a := known[sel.AttributeID]
		detail.Attributes = append(detail.Attributes, ExpandedAttribute{
			AttributeID:     sel.AttributeID,
			EnAttributeName: a.EnAttributeName,
			ArAttributeName: a.ArAttributeName,
			Name:            lang.Pick(a.EnAttributeName, a.ArAttributeName),
			Values:          values,
		})
	}
	return detail, nil
}

// Categories returns the navigation tree.
func (s *StorefrontService) Categories(ctx context.Context) ([]CategoryWithBrands, error) {
	return s.catalog.CategoryTree(ctx)
}

// QuantityPrices lists price×i for i = 1..max, with max clamped to
// [1, MaxQuantityPrices].
func QuantityPrices(price decimal.Decimal, max int) []QuantityPrice {
	if max < 1 {
		max = 1
	}
	if max > MaxQuantityPrices {
		max = MaxQuantityPrices
	}
	out := make([]QuantityPrice, max)
	for i := range out {
		q := i + 1
		out[i] = QuantityPrice{Quantity: q, Price: price.Mul(decimal.NewFromInt(int64(q)))}
	}
	return out
}

func card(row repositories.ProductRow, lang locale.Lang) ProductCard {
	return ProductCard{
		ProductRow:   row,
		Name:         lang.Pick(row.EnName, row.ArName),
		Description:  lang.Pick(row.EnDescription, row.ArDescription),
		CategoryName: lang.Pick(row.EnCategoryName, row.ArCategoryName),
		BrandName:    lang.Pick(row.EnBrandName, row.ArBrandName),
	}
}
