package models

type Stylist struct {
	ID      string  `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	SalonID *string `json:"salon_id,omitempty" db:"salon_id"`
}

// Service is a catalog entry. Price is a whole-rupee amount.
type Service struct {
	ID      string  `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Price   int     `json:"price" db:"price"`
	SalonID *string `json:"salon_id,omitempty" db:"salon_id"`
}
