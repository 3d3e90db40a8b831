package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/services"
	"github.com/b-sukumar/salondost-dashboard/store"
)

// BookingStore is what the booking endpoints need from the data layer.
type BookingStore interface {
	ListBookings(f store.BookingFilter) ([]models.Booking, error)
	GetBooking(id string) (models.Booking, error)
	InsertBooking(fields map[string]interface{}) (models.Booking, error)
	CompleteBooking(id string) (models.Booking, error)
	DeleteBooking(id string) error
	ListServices() ([]models.Service, error)
}

type BookingHandler struct {
	store    BookingStore
	reminder *services.ReminderComposer
	loc      *time.Location
}

func NewBookingHandler(store BookingStore, reminder *services.ReminderComposer, loc *time.Location) *BookingHandler {
	return &BookingHandler{
		store:    store,
		reminder: reminder,
		loc:      loc,
	}
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	filter := store.BookingFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}

	bookings, err := h.store.ListBookings(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch bookings",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    bookings,
	})
}

// CreateBooking is the quick-book action: date and time default to the
// salon's wall clock and a new booking always starts out Pending.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	now := time.Now().In(h.loc)
	bookingDate := req.BookingDate
	if bookingDate == "" {
		bookingDate = now.Format("2006-01-02")
	}
	bookingTime := req.BookingTime
	if bookingTime == "" {
		bookingTime = now.Format("03:04 PM")
	}

	booking, err := h.store.InsertBooking(map[string]interface{}{
		"client_name":  req.ClientName,
		"client_phone": req.ClientPhone,
		"service_id":   req.ServiceID,
		"staff_id":     req.StaffID,
		"booking_date": bookingDate,
		"booking_time": bookingTime,
		"status":       models.StatusPending,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to create booking",
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Booking created successfully",
		Data:    booking,
	})
}

// CompleteBooking marks a booking done. This is the only status transition
// the API exposes.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	bookingID := c.Param("id")

	booking, err := h.store.CompleteBooking(bookingID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Booking not found or already completed",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to update booking",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Khata updated",
		Data:    booking,
	})
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("id")

	err := h.store.DeleteBooking(bookingID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Booking not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to delete booking",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Booking deleted successfully",
	})
}

// GetReminder composes the WhatsApp reminder deep link for a booking.
func (h *BookingHandler) GetReminder(c *gin.Context) {
	bookingID := c.Param("id")

	booking, err := h.store.GetBooking(bookingID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Booking not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch booking",
		})
		return
	}

	serviceName := "Unknown Service"
	if servicesRows, err := h.store.ListServices(); err == nil {
		for _, s := range servicesRows {
			if s.ID == booking.ServiceID {
				serviceName = s.Name
				break
			}
		}
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    h.reminder.Compose(booking, serviceName),
	})
}
