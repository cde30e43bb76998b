package entity

import (
	"gorm.io/gorm"
)

type RestaurantCategory string

const (
	CategoryFastFood   RestaurantCategory = "fast_food"
	CategoryMilliyTaom RestaurantCategory = "milliy_taom"
	CategoryPizza      RestaurantCategory = "pizza"
	CategoryBurger     RestaurantCategory = "burger"
)

type Restaurant struct {
	gorm.Model
	Name     string             `gorm:"not null" json:"name"`
	Phone    string             `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Password string             `gorm:"type:varchar(255)" json:"-"`
	Image    string             `gorm:"not null" json:"image"`
	Address  string             `json:"address"`
	Category RestaurantCategory `gorm:"type:varchar(20);not null" json:"category"`

	CityID uint `gorm:"not null" json:"cityId"`
	City   City `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	// menu dies with the restaurant
	Menus  []Menu  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders []Order `json:"-"`
}
