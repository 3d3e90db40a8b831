package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/export"
	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/store"
)

// PaymentSource provides the rows joined into the payments ledger.
type PaymentSource interface {
	ListBookings(f store.BookingFilter) ([]models.Booking, error)
	ListServices() ([]models.Service, error)
	ListStaff() ([]models.Stylist, error)
}

type PaymentHandler struct {
	source PaymentSource
	loc    *time.Location
}

func NewPaymentHandler(source PaymentSource, loc *time.Location) *PaymentHandler {
	return &PaymentHandler{source: source, loc: loc}
}

// records joins completed bookings with the catalogs in memory, newest date
// first. Dangling service or staff ids get the "Unknown" placeholder rather
// than an error.
func (h *PaymentHandler) records() ([]models.PaymentRecord, error) {
	bookings, err := h.source.ListBookings(store.BookingFilter{Status: models.StatusCompleted})
	if err != nil {
		return nil, err
	}
	servicesRows, err := h.source.ListServices()
	if err != nil {
		return nil, err
	}
	staffRows, err := h.source.ListStaff()
	if err != nil {
		return nil, err
	}

	serviceByID := make(map[string]models.Service, len(servicesRows))
	for _, s := range servicesRows {
		serviceByID[s.ID] = s
	}
	staffByID := make(map[string]models.Stylist, len(staffRows))
	for _, s := range staffRows {
		staffByID[s.ID] = s
	}

	records := make([]models.PaymentRecord, 0, len(bookings))
	for _, b := range bookings {
		record := models.PaymentRecord{
			Booking:     b,
			ServiceName: "Unknown",
			StaffName:   "Unknown",
		}
		if service, ok := serviceByID[b.ServiceID]; ok {
			record.ServiceName = service.Name
			record.Amount = service.Price
		}
		if stylist, ok := staffByID[b.StaffID]; ok {
			record.StaffName = stylist.Name
		}
		records = append(records, record)
	}
	return records, nil
}

func (h *PaymentHandler) GetPayments(c *gin.Context) {
	records, err := h.records()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch payment data",
		})
		return
	}

	total := 0
	for _, r := range records {
		total += r.Amount
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"payments":      records,
			"total_revenue": total,
		},
	})
}

// ExportPayments streams the completed bookings as a CSV attachment. An
// empty ledger is rejected before any file bytes exist.
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	records, err := h.records()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch payment data",
		})
		return
	}

	data, err := export.PaymentsCSV(records)
	if errors.Is(err, export.ErrNoData) {
		c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Error:   "No data to export",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to build export",
		})
		return
	}

	today := time.Now().In(h.loc).Format("2006-01-02")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(today)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
