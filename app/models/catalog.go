package models

import "time"

type Category struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EnCategoryName string    `gorm:"size:255;not null" json:"en_category_name"`
	ArCategoryName string    `gorm:"size:255;not null" json:"ar_category_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Brand belongs to a category. Nothing stops a category with brands from
// being deleted.
type Brand struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	EnBrandName string    `gorm:"size:255;not null" json:"en_brand_name"`
	ArBrandName string    `gorm:"size:255;not null" json:"ar_brand_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Attribute struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EnAttributeName string    `gorm:"size:255;not null" json:"en_attribute_name"`
	ArAttributeName string    `gorm:"size:255;not null" json:"ar_attribute_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
