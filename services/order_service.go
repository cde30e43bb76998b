package services

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
	log  *slog.Logger
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{DB: db, Repo: repo, log: log}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuID   uint   `json:"menuId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

type CreateOrderReq struct {
	Address        string                `json:"address" binding:"required"`
	DriverID       *uint                 `json:"driverId"`
	PaymentMethod  entity.PaymentMethod  `json:"paymentMethod" binding:"required,oneof=cash card online"`
	ClientID       uint                  `json:"clientId" binding:"required"`
	DeliveryMethod entity.DeliveryMethod `json:"deliveryMethod" binding:"required,oneof=delivery pickup"`
	RestaurantID   uint                  `json:"restaurantId" binding:"required"`
	Items          []OrderItemIn         `json:"items" binding:"omitempty,dive"`
	Status         entity.OrderStatus    `json:"status" binding:"omitempty,oneof=new confirmed preparing ready_for_pickup out_for_delivery delivered cancelled"`
	Discount       *int                  `json:"discount" binding:"omitempty,min=0,max=100"`
	DeliveryFee    *decimal.Decimal      `json:"deliveryFee"`
	Comment        string                `json:"comment"`
}

type UpdateOrderReq struct {
	Address     *string             `json:"address"`
	Status      *entity.OrderStatus `json:"status" binding:"omitempty,oneof=new confirmed preparing ready_for_pickup out_for_delivery delivered cancelled"`
	Discount    *int                `json:"discount" binding:"omitempty,min=0,max=100"`
	DeliveryFee *decimal.Decimal    `json:"deliveryFee"`
	DriverID    *uint               `json:"driverId"`
	Items       []OrderItemIn       `json:"items" binding:"omitempty,dive"`
}

type OrderWithItems struct {
	entity.Order
	Items []entity.OrderItem `json:"items"`
}

// ----- Create -----

// Create validates the participants and the item set, snapshots menu
// prices, computes the totals and persists the order together with its
// items in one transaction. Nothing is written when any step fails.
func (s *OrderService) Create(req *CreateOrderReq) (*OrderWithItems, error) {
	s.log.Info("creating order", "restaurantId", req.RestaurantID, "clientId", req.ClientID, "items", len(req.Items))

	if err := s.validateParticipants(req.DriverID, req.ClientID, req.RestaurantID); err != nil {
		return nil, err
	}

	items, err := s.validateAndPrepareItems(req.Items)
	if err != nil {
		return nil, err
	}

	discount := 0
	if req.Discount != nil {
		discount = *req.Discount
	}
	deliveryFee := decimal.Zero
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, apperr.BadRequest("delivery fee must not be negative")
		}
		deliveryFee = *req.DeliveryFee
	}

	subtotal := calculateSubtotal(items)
	total := calculateTotal(subtotal, discount, deliveryFee)
	s.log.Debug("order totals", "subtotal", subtotal, "total", total, "discount", discount)

	order := entity.Order{
		Address:        req.Address,
		DriverID:       req.DriverID,
		ClientID:       req.ClientID,
		RestaurantID:   req.RestaurantID,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		Comment:        req.Comment,
		SubtotalPrice:  subtotal,
		TotalPrice:     total,
		Discount:       discount,
		DeliveryFee:    deliveryFee,
		Status:         entity.StatusNew,
		PaymentStatus:  entity.PaymentPending,
	}
	if req.Status != "" {
		order.Status = req.Status
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return s.Repo.CreateItems(tx, items)
	})
	if err != nil {
		s.log.Error("order creation failed", "error", err)
		return nil, apperr.Wrap(err, "failed to create order")
	}

	s.log.Info("order created", "orderId", order.ID, "items", len(items))
	return &OrderWithItems{Order: order, Items: items}, nil
}

// ----- Update -----

// Update patches scalar fields and, when a new item set is supplied,
// replaces all items transactionally. Totals are recomputed whenever a
// pricing-relevant field (items, discount, delivery fee) changes.
func (s *OrderService) Update(id uint, req *UpdateOrderReq) (*OrderWithItems, error) {
	existing, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to update order")
	}

	updates := map[string]any{}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, apperr.BadRequest("delivery fee must not be negative")
		}
		updates["delivery_fee"] = *req.DeliveryFee
	}
	if req.DriverID != nil {
		if _, err := s.Repo.UserWithRole(*req.DriverID, entity.RoleDriver); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("driver with id %d not found or is not a driver", *req.DriverID)
			}
			return nil, apperr.Wrap(err, "failed to update order")
		}
		updates["driver_id"] = *req.DriverID
	}

	discount := existing.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}
	deliveryFee := existing.DeliveryFee
	if req.DeliveryFee != nil {
		deliveryFee = *req.DeliveryFee
	}

	if len(req.Items) > 0 {
		items, err := s.validateAndPrepareItems(req.Items)
		if err != nil {
			return nil, err
		}

		subtotal := calculateSubtotal(items)
		updates["subtotal_price"] = subtotal
		updates["total_price"] = calculateTotal(subtotal, discount, deliveryFee)

		var out OrderWithItems
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := s.Repo.Update(tx, id, updates); err != nil {
				return err
			}
			if err := s.Repo.DeleteItems(tx, id); err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = id
			}
			if err := s.Repo.CreateItems(tx, items); err != nil {
				return err
			}

			var updated entity.Order
			if err := tx.First(&updated, id).Error; err != nil {
				return err
			}
			fresh, err := s.Repo.GetItemsTx(tx, id)
			if err != nil {
				return err
			}
			out = OrderWithItems{Order: updated, Items: fresh}
			return nil
		})
		if err != nil {
			s.log.Error("order update failed", "orderId", id, "error", err)
			return nil, apperr.Wrap(err, "failed to update order")
		}

		s.log.Info("order updated with item replacement", "orderId", id, "items", len(items))
		return &out, nil
	}

	if len(updates) == 0 {
		return nil, apperr.BadRequest("no valid fields to update")
	}

	// a changed discount or delivery fee must not leave the stored total
	// stale
	if req.Discount != nil || req.DeliveryFee != nil {
		updates["total_price"] = calculateTotal(existing.SubtotalPrice, discount, deliveryFee)
	}

	if err := s.Repo.Update(s.DB, id, updates); err != nil {
		s.log.Error("order update failed", "orderId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to update order")
	}

	updated, err := s.Repo.Get(id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update order")
	}
	items, err := s.Repo.GetItems(id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update order")
	}

	s.log.Info("order updated", "orderId", id)
	return &OrderWithItems{Order: *updated, Items: items}, nil
}

// ----- Delete -----

type DeleteOrderRes struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	DeletedOrder *entity.Order `json:"deletedOrder"`
}

// Delete removes the order and all of its items in one transaction.
func (s *OrderService) Delete(id uint) (*DeleteOrderRes, error) {
	existing, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to delete order")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteItems(tx, id); err != nil {
			return err
		}
		return s.Repo.Delete(tx, id)
	})
	if err != nil {
		s.log.Error("order deletion failed", "orderId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to delete order")
	}

	s.log.Info("order deleted", "orderId", id)
	return &DeleteOrderRes{
		Success:      true,
		Message:      "order successfully deleted",
		DeletedOrder: existing,
	}, nil
}

// ----- Retrieval -----

type ParticipantInfo struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Role    entity.UserRole `json:"role"`
}

type RestaurantInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderDetail struct {
	entity.Order
	Client     *ParticipantInfo   `json:"client"`
	Restaurant *RestaurantInfo    `json:"restaurant"`
	Driver     *ParticipantInfo   `json:"driver"`
	Items      []entity.OrderItem `json:"items"`
}

// FindOne returns the order with the client and driver batched from the
// users table and the restaurant resolved from its own table; references
// that no longer resolve come back as null.
func (s *OrderService) FindOne(id uint) (*OrderDetail, error) {
	order, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to retrieve order")
	}

	ids := []uint{order.ClientID}
	if order.DriverID != nil {
		ids = append(ids, *order.DriverID)
	}
	users, err := s.Repo.UsersByIDs(ids)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to retrieve order")
	}
	userMap := make(map[uint]*ParticipantInfo, len(users))
	for i := range users {
		u := &users[i]
		userMap[u.ID] = &ParticipantInfo{ID: u.ID, Name: u.Name, Phone: u.Phone, Address: u.Address, Role: u.Role}
	}

	items, err := s.Repo.GetItems(id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to retrieve order")
	}

	detail := &OrderDetail{
		Order:  *order,
		Client: userMap[order.ClientID],
		Items:  items,
	}
	if restaurant, err := s.Repo.RestaurantByID(order.RestaurantID); err == nil {
		detail.Restaurant = &RestaurantInfo{
			ID: restaurant.ID, Name: restaurant.Name,
			Phone: restaurant.Phone, Address: restaurant.Address,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(err, "failed to retrieve order")
	}
	if order.DriverID != nil {
		detail.Driver = userMap[*order.DriverID]
	}
	return detail, nil
}

// FindAllByRestaurant lists a restaurant's orders joined with the client
// identity, newest first. The restaurant must exist.
func (s *OrderService) FindAllByRestaurant(restaurantID uint) ([]repository.RestaurantOrderSummary, error) {
	if _, err := s.Repo.RestaurantByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant with id %d not found", restaurantID)
		}
		return nil, apperr.Wrap(err, "failed to get orders for restaurant")
	}

	rows, err := s.Repo.ListForRestaurant(restaurantID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to get orders for restaurant")
	}
	s.log.Info("restaurant orders listed", "restaurantId", restaurantID, "count", len(rows))
	return rows, nil
}

type ClientOrderView struct {
	repository.ClientOrderSummary
	Driver *ParticipantInfo `json:"driver"`
}

// MyOrders lists a client's orders with restaurant identity joined in and
// drivers resolved through one batched lookup over the distinct driver ids.
func (s *OrderService) MyOrders(clientID uint) ([]ClientOrderView, error) {
	rows, err := s.Repo.ListForClient(clientID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to get client orders")
	}

	seen := map[uint]bool{}
	var driverIDs []uint
	for _, row := range rows {
		if row.DriverID != nil && !seen[*row.DriverID] {
			seen[*row.DriverID] = true
			driverIDs = append(driverIDs, *row.DriverID)
		}
	}
	drivers, err := s.Repo.UsersByIDs(driverIDs)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to get client orders")
	}
	driverMap := make(map[uint]*ParticipantInfo, len(drivers))
	for i := range drivers {
		d := &drivers[i]
		driverMap[d.ID] = &ParticipantInfo{ID: d.ID, Name: d.Name, Phone: d.Phone, Role: d.Role}
	}

	out := make([]ClientOrderView, 0, len(rows))
	for _, row := range rows {
		view := ClientOrderView{ClientOrderSummary: row}
		if row.DriverID != nil {
			view.Driver = driverMap[*row.DriverID]
		}
		out = append(out, view)
	}
	return out, nil
}

// ----- Validation & pricing -----

// validateParticipants confirms the client, the restaurant and (when given)
// the driver exist and hold the expected roles.
func (s *OrderService) validateParticipants(driverID *uint, clientID, restaurantID uint) error {
	if driverID != nil {
		if _, err := s.Repo.UserWithRole(*driverID, entity.RoleDriver); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("driver with id %d not found or is not a driver", *driverID)
			}
			return apperr.Wrap(err, "failed to create order")
		}
	}

	if _, err := s.Repo.UserWithRole(clientID, entity.RoleClient); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("client with id %d not found or is not a client", clientID)
		}
		return apperr.Wrap(err, "failed to create order")
	}

	if _, err := s.Repo.RestaurantByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("restaurant with id %d not found", restaurantID)
		}
		return apperr.Wrap(err, "failed to create order")
	}
	return nil
}

// validateAndPrepareItems resolves every referenced menu item in one batch
// and snapshots its current price onto the order line. Any missing id or
// quantity below one fails the whole set.
func (s *OrderService) validateAndPrepareItems(items []OrderItemIn) ([]entity.OrderItem, error) {
	if len(items) == 0 {
		return nil, apperr.BadRequest("order must contain at least one item")
	}

	menuIDs := make([]uint, 0, len(items))
	for _, it := range items {
		menuIDs = append(menuIDs, it.MenuID)
	}

	menus, err := s.Repo.MenusByIDs(menuIDs)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to resolve menu items")
	}
	menuMap := make(map[uint]entity.Menu, len(menus))
	for _, m := range menus {
		menuMap[m.ID] = m
	}

	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, apperr.BadRequest("quantity must be at least 1 for menu item %d", it.MenuID)
		}
		m, ok := menuMap[it.MenuID]
		if !ok {
			return nil, apperr.NotFound("menu item with id %d not found", it.MenuID)
		}
		if m.Price.IsNegative() {
			return nil, apperr.BadRequest("invalid price for menu item %d", m.ID)
		}
		out = append(out, entity.OrderItem{
			MenuID:   it.MenuID,
			Quantity: it.Quantity,
			Price:    m.Price,
			Notes:    it.Notes,
		})
	}
	return out, nil
}

func calculateSubtotal(items []entity.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

// calculateTotal applies the percentage discount and adds the delivery fee:
// total = subtotal - subtotal*discount/100 + deliveryFee.
func calculateTotal(subtotal decimal.Decimal, discount int, deliveryFee decimal.Decimal) decimal.Decimal {
	discountAmount := subtotal.Mul(decimal.NewFromInt(int64(discount))).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discountAmount).Add(deliveryFee).Round(2)
}
