package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is one amount for a product in a given currency. A product may carry
// several prices; they are removed together with the product.
type Price struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Currency  string          `json:"currency" gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	ProductID uint            `json:"product" gorm:"not null;index"`
	Product   *Product        `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// MarshalJSON renders Amount with exactly two decimal places.
func (p Price) MarshalJSON() ([]byte, error) {
	type price Price
	return json.Marshal(struct {
		price
		Amount string `json:"amount"`
	}{price(p), p.Amount.StringFixed(2)})
}
