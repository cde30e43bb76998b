package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Image       string          `gorm:"not null" json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	RestaurantID uint       `gorm:"not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload only for detail

	// RESTRICT: a menu item referenced by an order item cannot be deleted
	OrderItems []OrderItem `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
