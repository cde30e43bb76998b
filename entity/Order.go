package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

type Order struct {
	gorm.Model
	Address string      `gorm:"not null" json:"address"`
	Status  OrderStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`

	// TotalPrice = SubtotalPrice - SubtotalPrice*Discount/100 + DeliveryFee,
	// fixed at write time and never re-derived on read
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	SubtotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotalPrice"`
	IsDeleted     bool            `gorm:"default:false" json:"isDeleted"`
	Discount      int             `gorm:"default:0" json:"discount"` // percent, 0-100
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"deliveryFee"`

	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20);not null;default:'cash'" json:"paymentMethod"`
	PaymentStatus  PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	DeliveryMethod DeliveryMethod `gorm:"type:varchar(20);not null;default:'delivery'" json:"deliveryMethod"`
	Comment        string         `json:"comment"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
	DeliveredAt           *time.Time `json:"deliveredAt"`

	RestaurantRating *int `json:"restaurantRating"` // 1-5
	DeliveryRating   *int `json:"deliveryRating"`   // 1-5

	DriverID *uint `json:"driverId"`
	Driver   *User `gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL" json:"-"`

	ClientID uint `gorm:"not null" json:"clientId"`
	Client   User `gorm:"foreignKey:ClientID" json:"-"` // preload only for detail

	RestaurantID uint       `gorm:"not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
