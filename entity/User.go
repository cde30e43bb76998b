package entity

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleDriver     UserRole = "driver"
	RoleAdmin      UserRole = "admin"
	RoleRestaurant UserRole = "restaurant"
	RoleChef       UserRole = "chef"
)

type User struct {
	gorm.Model
	Name       string   `json:"name"`
	Phone      string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Password   string   `gorm:"type:varchar(255)" json:"-"`
	Address    string   `json:"address"`
	Role       UserRole `gorm:"type:varchar(20);not null" json:"role"`
	TelegramID *string  `gorm:"type:varchar(50);uniqueIndex" json:"telegramId"`

	CityID *uint `json:"cityId"`
	City   *City `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// preload only when an endpoint needs them
	ClientOrders []Order `gorm:"foreignKey:ClientID" json:"-"`
	DriverOrders []Order `gorm:"foreignKey:DriverID" json:"-"`
}
