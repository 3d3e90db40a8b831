package models

import "time"

// Customer is a directory entry. Bookings store raw client name/phone and do
// not reference this table.
type Customer struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Phone     string     `json:"phone" db:"phone"`
	SalonID   *string    `json:"salon_id,omitempty" db:"salon_id"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

type CustomerWithLinks struct {
	Customer
	CallURL string `json:"call_url"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}
