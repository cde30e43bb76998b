package services

import (
	"fmt"
	"log/slog"

	"github.com/tealeg/xlsx"

	"github.com/iroda0103/dastavka/pkg/apperr"
)

// ReportService renders restaurant order history as a spreadsheet for the
// admin panel.
type ReportService struct {
	Orders *OrderService
	log    *slog.Logger
}

func NewReportService(orders *OrderService, log *slog.Logger) *ReportService {
	return &ReportService{Orders: orders, log: log}
}

// ExportRestaurantOrders builds an xlsx workbook with one row per order,
// newest first, matching the restaurant order listing.
func (s *ReportService) ExportRestaurantOrders(restaurantID uint) (*xlsx.File, error) {
	rows, err := s.Orders.FindAllByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}

	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Orders")
	if err != nil {
		return nil, apperr.Wrap(err, "failed to build export")
	}

	header := sheet.AddRow()
	for _, h := range []string{"ID", "Client", "Phone", "Address", "Status", "Subtotal", "Discount %", "Delivery fee", "Total", "Created at"} {
		header.AddCell().SetString(h)
	}

	for _, o := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(fmt.Sprintf("%d", o.ID))
		r.AddCell().SetString(o.ClientName)
		r.AddCell().SetString(o.ClientPhone)
		r.AddCell().SetString(o.Address)
		r.AddCell().SetString(o.Status)
		r.AddCell().SetString(o.SubtotalPrice.StringFixed(2))
		r.AddCell().SetString(fmt.Sprintf("%d", o.Discount))
		r.AddCell().SetString(o.DeliveryFee.StringFixed(2))
		r.AddCell().SetString(o.TotalPrice.StringFixed(2))
		r.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	s.log.Info("orders exported", "restaurantId", restaurantID, "rows", len(rows))
	return wb, nil
}
