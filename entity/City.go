package entity

import (
	"gorm.io/gorm"
)

type City struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`

	// deletion is restricted while anything below still references the city
	Restaurants []Restaurant `json:"-"`
	Users       []User       `json:"-"`
}
