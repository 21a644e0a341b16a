package models

import "time"

// Product represents a stocked item in the catalog.
type Product struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	Quantity int    `json:"quantity" gorm:"not null;check:chk_products_quantity,quantity >= 0"`
	Barcode  string `json:"barcode" gorm:"type:varchar(50);not null;uniqueIndex"`
	// UpdatedAt is refreshed on every write, including stock reductions.
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	CategoryID *uint     `json:"category" gorm:"index"`
	Category   *Category `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
