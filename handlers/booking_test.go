package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/services"
	"github.com/b-sukumar/salondost-dashboard/store"
)

type fakeBookingStore struct {
	bookings     map[string]models.Booking
	services     []models.Service
	lastInserted map[string]interface{}
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings: map[string]models.Booking{
			"b1": {ID: "b1", ClientName: "Amit Shah", ClientPhone: "9876543210", ServiceID: "v1", StaffID: "s1", BookingDate: "2026-01-28", BookingTime: "10:00 AM", Status: models.StatusPending},
			"b2": {ID: "b2", ClientName: "Sanjay Dutt", ClientPhone: "9876543211", ServiceID: "v2", StaffID: "s1", BookingDate: "2026-01-28", BookingTime: "11:30 AM", Status: models.StatusCompleted},
		},
		services: []models.Service{
			{ID: "v1", Name: "Haircut", Price: 250},
			{ID: "v2", Name: "Beard Trim", Price: 100},
		},
	}
}

func (f *fakeBookingStore) ListBookings(_ store.BookingFilter) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingStore) GetBooking(id string) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, store.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) InsertBooking(fields map[string]interface{}) (models.Booking, error) {
	f.lastInserted = fields
	b := models.Booking{
		ID:          "generated",
		ClientName:  fields["client_name"].(string),
		ClientPhone: fields["client_phone"].(string),
		ServiceID:   fields["service_id"].(string),
		StaffID:     fields["staff_id"].(string),
		BookingDate: fields["booking_date"].(string),
		BookingTime: fields["booking_time"].(string),
		Status:      fields["status"].(string),
	}
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingStore) CompleteBooking(id string) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status == models.StatusCompleted {
		return models.Booking{}, store.ErrNotFound
	}
	b.Status = models.StatusCompleted
	f.bookings[id] = b
	return b, nil
}

func (f *fakeBookingStore) DeleteBooking(id string) error {
	if _, ok := f.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) ListServices() ([]models.Service, error) {
	return f.services, nil
}

func bookingRouter(f *fakeBookingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(f, services.NewReminderComposer("SalonDost"), time.UTC)
	r := gin.New()
	r.GET("/bookings", h.GetBookings)
	r.POST("/bookings", h.CreateBooking)
	r.PUT("/bookings/:id/complete", h.CompleteBooking)
	r.DELETE("/bookings/:id", h.DeleteBooking)
	r.GET("/bookings/:id/reminder", h.GetReminder)
	return r
}

func TestCreateBookingStampsDefaults(t *testing.T) {
	f := newFakeBookingStore()
	r := bookingRouter(f)

	body := `{"client_name":"Priya","client_phone":"9000000001","service_id":"v1","staff_id":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if f.lastInserted["status"] != models.StatusPending {
		t.Errorf("status = %v, want Pending", f.lastInserted["status"])
	}
	wantDate := time.Now().UTC().Format("2006-01-02")
	if f.lastInserted["booking_date"] != wantDate {
		t.Errorf("booking_date = %v, want %s", f.lastInserted["booking_date"], wantDate)
	}
	if f.lastInserted["booking_time"] == "" {
		t.Error("booking_time not stamped")
	}
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	r := bookingRouter(newFakeBookingStore())

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"client_name":"Priya"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCompleteBooking(t *testing.T) {
	f := newFakeBookingStore()
	r := bookingRouter(f)

	req := httptest.NewRequest(http.MethodPut, "/bookings/b1/complete", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if f.bookings["b1"].Status != models.StatusCompleted {
		t.Errorf("booking status = %s, want Completed", f.bookings["b1"].Status)
	}
}

func TestCompleteBookingAlreadyCompleted(t *testing.T) {
	r := bookingRouter(newFakeBookingStore())

	req := httptest.NewRequest(http.MethodPut, "/bookings/b2/complete", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a Completed booking", rec.Code)
	}
}

func TestDeleteBookingUnknownID(t *testing.T) {
	f := newFakeBookingStore()
	r := bookingRouter(f)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if len(f.bookings) != 2 {
		t.Errorf("collection changed on failed delete: %d bookings", len(f.bookings))
	}
}

func TestGetReminder(t *testing.T) {
	r := bookingRouter(newFakeBookingStore())

	req := httptest.NewRequest(http.MethodGet, "/bookings/b1/reminder", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.ReminderResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.HasPrefix(resp.Data.WhatsAppURL, "https://wa.me/9876543210?text=") {
		t.Errorf("whatsapp url = %q", resp.Data.WhatsAppURL)
	}
	if !strings.Contains(resp.Data.Message, "Haircut") {
		t.Errorf("message %q missing service name", resp.Data.Message)
	}
}

func TestGetReminderUnknownService(t *testing.T) {
	f := newFakeBookingStore()
	f.bookings["b1"] = models.Booking{ID: "b1", ClientName: "Amit Shah", ClientPhone: "9876543210", ServiceID: "gone", BookingTime: "10:00 AM", Status: models.StatusPending}
	r := bookingRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/bookings/b1/reminder", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown Service") {
		t.Errorf("dangling service must render as placeholder, body = %s", rec.Body.String())
	}
}
