package models

// Booking statuses as stored in the bookings table.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In-Progress"
	StatusCompleted  = "Completed"
)

type Booking struct {
	ID          string  `json:"id" db:"id"`
	ClientName  string  `json:"client_name" db:"client_name"`
	ClientPhone string  `json:"client_phone" db:"client_phone"`
	ServiceID   string  `json:"service_id" db:"service_id"`
	StaffID     string  `json:"staff_id" db:"staff_id"`
	BookingDate string  `json:"booking_date" db:"booking_date"`
	BookingTime string  `json:"booking_time" db:"booking_time"`
	Status      string  `json:"status" db:"status"`
	SalonID     *string `json:"salon_id,omitempty" db:"salon_id"`
}

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
	StaffID     string `json:"staff_id" binding:"required"`
	BookingDate string `json:"booking_date,omitempty"`
	BookingTime string `json:"booking_time,omitempty"`
}

// PaymentRecord is a completed booking joined with its catalog entries.
// Dangling service or staff references are rendered as "Unknown".
type PaymentRecord struct {
	Booking
	ServiceName string `json:"service_name"`
	StaffName   string `json:"staff_name"`
	Amount      int    `json:"amount"`
}

type ReminderResponse struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}
