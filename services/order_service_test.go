package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.City{}, &entity.User{}, &entity.Restaurant{},
		&entity.Menu{}, &entity.Order{}, &entity.OrderItem{}, &entity.File{},
	))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, repository.NewOrderRepository(db), testLogger())
}

type fixture struct {
	city       entity.City
	client     entity.User
	driver     entity.User
	restaurant entity.Restaurant
	menu       entity.Menu
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{}
	f.city = entity.City{Name: "Tashkent"}
	require.NoError(t, db.Create(&f.city).Error)

	f.client = entity.User{Name: "Ali", Phone: "+998901112233", Role: entity.RoleClient}
	require.NoError(t, db.Create(&f.client).Error)

	f.driver = entity.User{Name: "Bekzod", Phone: "+998904445566", Role: entity.RoleDriver}
	require.NoError(t, db.Create(&f.driver).Error)

	f.restaurant = entity.Restaurant{
		Name: "Osh Markazi", Phone: "+998907778899", Image: "osh.jpg",
		Category: entity.CategoryMilliyTaom, CityID: f.city.ID,
	}
	require.NoError(t, db.Create(&f.restaurant).Error)

	f.menu = entity.Menu{
		Name: "Osh", Image: "osh.jpg",
		Price:        decimal.RequireFromString("10.00"),
		RestaurantID: f.restaurant.ID,
	}
	require.NoError(t, db.Create(&f.menu).Error)

	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDecimalEqual(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestCreateOrderPricing(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	discount := 10
	fee := dec("5.00")
	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
		Discount:       &discount,
		DeliveryFee:    &fee,
	})
	require.NoError(t, err)

	// subtotal=20.00, discountAmount=2.00, total=20.00-2.00+5.00=23.00
	requireDecimalEqual(t, dec("20.00"), out.SubtotalPrice)
	requireDecimalEqual(t, dec("23.00"), out.TotalPrice)
	require.Len(t, out.Items, 1)
	requireDecimalEqual(t, dec("10.00"), out.Items[0].Price)
	require.Equal(t, entity.StatusNew, out.Status)
}

func TestCreateOrderUnknownMenuWritesNothing(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	_, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items: []OrderItemIn{
			{MenuID: f.menu.ID, Quantity: 1},
			{MenuID: 9999, Quantity: 1},
		},
	})
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var orders, items int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	_, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
	})
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	var orders int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCreateOrderRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	for _, quantity := range []int{0, -3} {
		_, err := svc.Create(&CreateOrderReq{
			Address:        "Chilonzor 5",
			PaymentMethod:  entity.PaymentCash,
			DeliveryMethod: entity.MethodDelivery,
			ClientID:       f.client.ID,
			RestaurantID:   f.restaurant.ID,
			Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: quantity}},
		})
		require.True(t, apperr.IsKind(err, apperr.KindBadRequest), "quantity %d", quantity)
	}

	var orders, items int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)
}

func TestUpdateRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Update(out.ID, &UpdateOrderReq{
		Items: []OrderItemIn{{MenuID: f.menu.ID, Quantity: 0}},
	})
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	// the original item set is untouched
	stored, err := svc.FindOne(out.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	require.Equal(t, 2, stored.Items[0].Quantity)
	requireDecimalEqual(t, dec("20.00"), stored.TotalPrice)
}

func TestNegativeDeliveryFeeRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	fee := dec("-5.00")
	_, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
		DeliveryFee:    &fee,
	})
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	var orders int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Update(out.ID, &UpdateOrderReq{DeliveryFee: &fee})
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	stored, err := svc.FindOne(out.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, dec("20.00"), stored.TotalPrice)
	requireDecimalEqual(t, decimal.Zero, stored.DeliveryFee)
}

func TestCreateOrderParticipantValidation(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	base := CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	}

	t.Run("client must hold the client role", func(t *testing.T) {
		req := base
		req.ClientID = f.driver.ID
		_, err := svc.Create(&req)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("restaurant must exist", func(t *testing.T) {
		req := base
		req.RestaurantID = 9999
		_, err := svc.Create(&req)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("driver must hold the driver role when given", func(t *testing.T) {
		req := base
		req.DriverID = &f.client.ID
		_, err := svc.Create(&req)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("driver is optional", func(t *testing.T) {
		req := base
		out, err := svc.Create(&req)
		require.NoError(t, err)
		require.Nil(t, out.DriverID)
	})
}

func TestOrderItemsSnapshotPrices(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	req := CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	}
	first, err := svc.Create(&req)
	require.NoError(t, err)

	// menu price changes between the two orders
	require.NoError(t, db.Model(&entity.Menu{}).Where("id = ?", f.menu.ID).
		Update("price", dec("15.00")).Error)

	second, err := svc.Create(&req)
	require.NoError(t, err)

	requireDecimalEqual(t, dec("10.00"), first.Items[0].Price)
	requireDecimalEqual(t, dec("15.00"), second.Items[0].Price)

	// the first order's stored snapshot is untouched
	stored, err := svc.FindOne(first.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, dec("10.00"), stored.Items[0].Price)
}

func TestUpdateReplacesItemSet(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	oldItemID := out.Items[0].ID

	// price changes before the replacement; new lines use the current price
	require.NoError(t, db.Model(&entity.Menu{}).Where("id = ?", f.menu.ID).
		Update("price", dec("12.50")).Error)

	updated, err := svc.Update(out.ID, &UpdateOrderReq{
		Items: []OrderItemIn{{MenuID: f.menu.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	requireDecimalEqual(t, dec("12.50"), updated.Items[0].Price)
	requireDecimalEqual(t, dec("37.50"), updated.SubtotalPrice)
	requireDecimalEqual(t, dec("37.50"), updated.TotalPrice)

	var oldCount int64
	require.NoError(t, db.Model(&entity.OrderItem{}).Where("id = ?", oldItemID).Count(&oldCount).Error)
	require.Zero(t, oldCount)
}

func TestUpdateDiscountRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	requireDecimalEqual(t, dec("20.00"), out.TotalPrice)

	discount := 50
	updated, err := svc.Update(out.ID, &UpdateOrderReq{Discount: &discount})
	require.NoError(t, err)
	require.Equal(t, 50, updated.Discount)
	requireDecimalEqual(t, dec("20.00"), updated.SubtotalPrice)
	requireDecimalEqual(t, dec("10.00"), updated.TotalPrice)
}

func TestUpdateNoFields(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Update(out.ID, &UpdateOrderReq{})
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	require.EqualError(t, err, "no valid fields to update")
}

func TestUpdateMissingOrder(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	svc := newOrderService(db)

	addr := "Yunusobod 19"
	_, err := svc.Update(4242, &UpdateOrderReq{Address: &addr})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	res, err := svc.Delete(out.ID)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, out.ID, res.DeletedOrder.ID)

	var orders, items int64
	require.NoError(t, db.Unscoped().Model(&entity.Order{}).Where("id = ?", out.ID).Count(&orders).Error)
	require.NoError(t, db.Unscoped().Model(&entity.OrderItem{}).Where("order_id = ?", out.ID).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)

	_, err = svc.Delete(out.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFindOneResolvesParticipants(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	out, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		DriverID:       &f.driver.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	detail, err := svc.FindOne(out.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Client)
	require.Equal(t, f.client.ID, detail.Client.ID)
	require.NotNil(t, detail.Driver)
	require.Equal(t, f.driver.ID, detail.Driver.ID)
	require.NotNil(t, detail.Restaurant)
	require.Equal(t, f.restaurant.Name, detail.Restaurant.Name)
	require.Len(t, detail.Items, 1)
}

func TestFindAllByRestaurant(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	_, err := svc.FindAllByRestaurant(9999)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	for i := 0; i < 3; i++ {
		_, err := svc.Create(&CreateOrderReq{
			Address:        "Chilonzor 5",
			PaymentMethod:  entity.PaymentCash,
			DeliveryMethod: entity.MethodDelivery,
			ClientID:       f.client.ID,
			RestaurantID:   f.restaurant.ID,
			Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	rows, err := svc.FindAllByRestaurant(f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, f.client.Name, rows[0].ClientName)
}

func TestMyOrdersResolvesDrivers(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newOrderService(db)

	_, err := svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		DriverID:       &f.driver.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(&CreateOrderReq{
		Address:        "Chilonzor 5",
		PaymentMethod:  entity.PaymentCash,
		DeliveryMethod: entity.MethodDelivery,
		ClientID:       f.client.ID,
		RestaurantID:   f.restaurant.ID,
		Items:          []OrderItemIn{{MenuID: f.menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	rows, err := svc.MyOrders(f.client.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var withDriver, withoutDriver int
	for _, row := range rows {
		require.Equal(t, f.restaurant.Name, row.RestaurantName)
		if row.Driver != nil {
			require.Equal(t, f.driver.ID, row.Driver.ID)
			withDriver++
		} else {
			withoutDriver++
		}
	}
	require.Equal(t, 1, withDriver)
	require.Equal(t, 1, withoutDriver)
}

func TestCalculateTotal(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		discount int
		fee      string
		want     string
	}{
		{"no adjustments", "20.00", 0, "0", "20.00"},
		{"discount and fee", "20.00", 10, "5.00", "23.00"},
		{"full discount", "20.00", 100, "5.00", "5.00"},
		{"fractional result rounds to cents", "9.99", 33, "0", "6.69"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateTotal(dec(tc.subtotal), tc.discount, dec(tc.fee))
			requireDecimalEqual(t, dec(tc.want), got)
		})
	}
}
