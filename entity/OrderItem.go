package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null" json:"quantity"`

	// snapshot of the menu price at order time; later menu edits must not
	// change it
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes string          `json:"notes"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `json:"-"` // preload only for detail

	MenuID uint `gorm:"not null" json:"menuId"`
	Menu   Menu `json:"-"`
}
