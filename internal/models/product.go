package models

import "gorm.io/gorm"

// Product is a catalog item owned by exactly one vendor.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	VendorID    string    `json:"vendor_id" gorm:"index;type:varchar(36)"`
	Vendor      *User     `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	CategoryID  string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name        string    `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(220)"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Image       string    `json:"image"` // storage key, resolved by pkg/storage
	IsActive    bool      `json:"is_active"`
	gorm.Model  `json:"-"`
}
