// Package store translates application reads and writes into PostgREST
// queries against the Supabase project. Callers get back either rows or an
// error; an empty result set is not an error, and a write that matches no
// row is ErrNotFound.
package store

import (
	"encoding/json"
	"errors"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/b-sukumar/salondost-dashboard/models"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	supabase *supa.Client
}

func New(supabase *supa.Client) *Store {
	return &Store{supabase: supabase}
}

// BookingFilter narrows ListBookings. Zero value lists everything.
type BookingFilter struct {
	Status string
	Date   string
}

func (s *Store) ListBookings(f BookingFilter) ([]models.Booking, error) {
	query := s.supabase.From("bookings").
		Select("*", "", false).
		Order("booking_date", &postgrest.OrderOpts{Ascending: false})

	if f.Status != "" {
		query = query.Eq("status", f.Status)
	}
	if f.Date != "" {
		query = query.Eq("booking_date", f.Date)
	}

	var bookings []models.Booking
	data, _, err := query.Execute()
	if err == nil {
		err = json.Unmarshal(data, &bookings)
	}
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) GetBooking(id string) (models.Booking, error) {
	var bookings []models.Booking
	data, _, err := s.supabase.From("bookings").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &bookings)
	}
	if err != nil {
		return models.Booking{}, err
	}
	if len(bookings) == 0 {
		return models.Booking{}, ErrNotFound
	}
	return bookings[0], nil
}

func (s *Store) InsertBooking(fields map[string]interface{}) (models.Booking, error) {
	var created []models.Booking
	data, _, err := s.supabase.From("bookings").
		Insert(fields, false, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &created)
	}
	if err != nil {
		return models.Booking{}, err
	}
	if len(created) == 0 {
		return models.Booking{}, ErrNotFound
	}
	return created[0], nil
}

// CompleteBooking is the only exposed status transition. The Neq filter
// keeps a Completed booking from being "re-completed"; a miss on either
// condition surfaces as ErrNotFound.
func (s *Store) CompleteBooking(id string) (models.Booking, error) {
	var updated []models.Booking
	data, _, err := s.supabase.From("bookings").
		Update(map[string]interface{}{"status": models.StatusCompleted}, "", "").
		Eq("id", id).
		Neq("status", models.StatusCompleted).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &updated)
	}
	if err != nil {
		return models.Booking{}, err
	}
	if len(updated) == 0 {
		return models.Booking{}, ErrNotFound
	}
	return updated[0], nil
}

func (s *Store) DeleteBooking(id string) error {
	var deleted []models.Booking
	data, _, err := s.supabase.From("bookings").
		Delete("representation", "").
		Eq("id", id).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &deleted)
	}
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListServices() ([]models.Service, error) {
	var services []models.Service
	data, _, err := s.supabase.From("services").
		Select("*", "", false).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &services)
	}
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) ListStaff() ([]models.Stylist, error) {
	var staff []models.Stylist
	data, _, err := s.supabase.From("staff").
		Select("*", "", false).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &staff)
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Store) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	data, _, err := s.supabase.From("customers").
		Select("*", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &customers)
	}
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) InsertCustomer(fields map[string]interface{}) (models.Customer, error) {
	var created []models.Customer
	data, _, err := s.supabase.From("customers").
		Insert(fields, false, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &created)
	}
	if err != nil {
		return models.Customer{}, err
	}
	if len(created) == 0 {
		return models.Customer{}, ErrNotFound
	}
	return created[0], nil
}

func (s *Store) CountCustomers() (int64, error) {
	_, count, err := s.supabase.From("customers").
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, err
	}
	return count, nil
}
