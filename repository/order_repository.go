package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Update(tx *gorm.DB, orderID uint, updates map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *OrderRepository) Delete(tx *gorm.DB, orderID uint) error {
	return tx.Unscoped().Delete(&entity.Order{}, orderID).Error
}

// ClientOrderSummary is one row of a client's order history, with the
// restaurant identity joined in. Drivers are resolved separately.
type ClientOrderSummary struct {
	ID             uint            `json:"id"`
	Address        string          `json:"address"`
	Status         string          `json:"status"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	SubtotalPrice  decimal.Decimal `json:"subtotalPrice"`
	Discount       int             `json:"discount"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	DriverID       *uint           `json:"-"`
	RestaurantID   uint            `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	ClientName     string          `json:"clientName"`
	ClientPhone    string          `json:"clientPhone"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (r *OrderRepository) ListForClient(clientID uint) ([]ClientOrderSummary, error) {
	var rows []ClientOrderSummary
	err := r.DB.Table("orders AS o").
		Select(`o.id, o.address, o.status, o.total_price, o.subtotal_price,
			o.discount, o.delivery_fee, o.driver_id, o.restaurant_id,
			r.name AS restaurant_name, u.name AS client_name, u.phone AS client_phone,
			o.created_at, o.updated_at`).
		Joins("LEFT JOIN users u ON u.id = o.client_id").
		Joins("LEFT JOIN restaurants r ON r.id = o.restaurant_id").
		Where("o.client_id = ? AND o.deleted_at IS NULL", clientID).
		Order("o.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// RestaurantOrderSummary is one row of a restaurant's order list joined with
// the client identity, newest order first.
type RestaurantOrderSummary struct {
	ID            uint            `json:"id"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	SubtotalPrice decimal.Decimal `json:"subtotalPrice"`
	Discount      int             `json:"discount"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	ClientID      uint            `json:"clientId"`
	ClientName    string          `json:"clientName"`
	ClientPhone   string          `json:"clientPhone"`
	ClientAddress string          `json:"clientAddress"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (r *OrderRepository) ListForRestaurant(restaurantID uint) ([]RestaurantOrderSummary, error) {
	var rows []RestaurantOrderSummary
	err := r.DB.Table("orders AS o").
		Select(`o.id, o.address, o.status, o.total_price, o.subtotal_price,
			o.discount, o.delivery_fee, o.created_at, o.updated_at,
			u.id AS client_id, u.name AS client_name, u.phone AS client_phone,
			u.address AS client_address`).
		Joins("LEFT JOIN users u ON u.id = o.client_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restaurantID).
		Order("o.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateItems(tx *gorm.DB, items []entity.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *OrderRepository) DeleteItems(tx *gorm.DB, orderID uint) error {
	return tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error
}

func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *OrderRepository) GetItemsTx(tx *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := tx.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Participant lookups ----------------

// UserWithRole fetches the user only when it holds the expected role.
func (r *OrderRepository) UserWithRole(id uint, role entity.UserRole) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("id = ? AND role = ?", id, role).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *OrderRepository) UsersByIDs(ids []uint) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []entity.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *OrderRepository) RestaurantByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// MenusByIDs resolves menu items for pricing in one batch.
func (r *OrderRepository) MenusByIDs(ids []uint) ([]entity.Menu, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var menus []entity.Menu
	err := r.DB.Where("id IN ?", ids).Find(&menus).Error
	return menus, err
}
