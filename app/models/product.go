package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKULength is the length of a freshly generated SKU.
const SKULength = 8

// Product is a catalogue item. Rows are never deleted; IsActive=false hides
// them from the storefront.
type Product struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CategoryID         uint            `gorm:"not null;index" json:"category_id"`
	BrandID            uint            `gorm:"not null;index" json:"brand_id"`
	SKU                string          `gorm:"size:16;not null;uniqueIndex" json:"sku"`
	ActualPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"actual_price"`
	OffPercentageValue decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"off_percentage_value"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Cost               decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost"`
	EnName             string          `gorm:"size:255;not null" json:"en_name"`
	ArName             string          `gorm:"size:255;not null" json:"ar_name"`
	EnDescription      string          `gorm:"type:text" json:"en_description"`
	ArDescription      string          `gorm:"type:text" json:"ar_description"`
	Attributes         AttributeList   `gorm:"type:text" json:"attributes"`
	Quantity           int             `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	Sold               int             `gorm:"not null;default:0" json:"sold"`
	Image              string          `gorm:"size:512" json:"image"`
	Images             ImageList       `gorm:"type:text" json:"images"`
	IsDeal             bool            `gorm:"not null;default:false;index" json:"is_deal"`
	IsHotDeal          bool            `gorm:"not null;default:false" json:"is_hot_deal"`
	VatIncluded        bool            `gorm:"not null;default:false" json:"vat_included"`
	IsActive           bool            `gorm:"not null;default:true;index" json:"is_active"`
	MaxQuantityPerUser int             `gorm:"not null;default:1" json:"max_quantity_per_user"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DiscountedPrice returns actual × (100 − off) / 100 rounded to two places.
func DiscountedPrice(actual, offPercentage decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return actual.Mul(hundred.Sub(offPercentage)).Div(hundred).Round(2)
}
