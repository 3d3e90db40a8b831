package ledger

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/store"
)

type fakeFetcher struct {
	mu       sync.Mutex
	bookings []models.Booking
	services []models.Service
	staff    []models.Stylist

	bookingsErr error

	// when set, ListBookings reads its rows and then blocks until the
	// channel is closed before returning them
	gate chan struct{}
}

func (f *fakeFetcher) ListBookings(_ store.BookingFilter) ([]models.Booking, error) {
	f.mu.Lock()
	gate := f.gate
	err := f.bookingsErr
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if gate != nil {
		<-gate
	}
	return out, nil
}

func (f *fakeFetcher) ListServices() ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services, nil
}

func (f *fakeFetcher) ListStaff() ([]models.Stylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staff, nil
}

func seedFetcher() *fakeFetcher {
	return &fakeFetcher{
		bookings: []models.Booking{
			{ID: "b1", ClientPhone: "9876543210", ServiceID: "v1", BookingDate: "2026-01-28", BookingTime: "10:00 AM", Status: models.StatusCompleted},
			{ID: "b2", ClientPhone: "1111111111", ServiceID: "v3", BookingDate: "2026-01-28", BookingTime: "11:30 AM", Status: models.StatusPending},
		},
		services: []models.Service{
			{ID: "v1", Name: "Haircut", Price: 250},
			{ID: "v3", Name: "Facial", Price: 500},
		},
		staff: []models.Stylist{{ID: "s1", Name: "Rahul"}},
	}
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	f := seedFetcher()
	l := New(f, zap.NewNop())
	l.Refresh("test")

	if got := len(l.Bookings()); got != 2 {
		t.Fatalf("bookings = %d, want 2", got)
	}
	if got := len(l.Services()); got != 2 {
		t.Fatalf("services = %d, want 2", got)
	}
	if got := len(l.Staff()); got != 1 {
		t.Fatalf("staff = %d, want 1", got)
	}

	sum := l.Summary("2026-01-28")
	if sum.Collected != 250 || sum.PendingRevenue != 500 || sum.QueueCount != 1 {
		t.Errorf("summary = %+v, want collected=250 pending=500 queue=1", sum)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	f := seedFetcher()
	l := New(f, zap.NewNop())

	l.Refresh("test")
	first := l.Summary("2026-01-28")
	l.Refresh("test")
	second := l.Summary("2026-01-28")

	if first != second {
		t.Errorf("refresh not idempotent: %+v vs %+v", first, second)
	}
}

func TestRefreshPartialFailureKeepsPreviousTable(t *testing.T) {
	f := seedFetcher()
	l := New(f, zap.NewNop())
	l.Refresh("test")

	f.mu.Lock()
	f.bookingsErr = errors.New("store unavailable")
	f.services = append(f.services, models.Service{ID: "v5", Name: "Hair Color", Price: 800})
	f.mu.Unlock()

	l.Refresh("test")

	if got := len(l.Bookings()); got != 2 {
		t.Errorf("bookings = %d after failed fetch, want previous value 2", got)
	}
	if got := len(l.Services()); got != 3 {
		t.Errorf("services = %d, want 3 (other fetches must still land)", got)
	}
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	f := seedFetcher()
	l := New(f, zap.NewNop())

	// First cycle reads the two seed bookings, then stalls before returning.
	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
	done := make(chan struct{})
	go func() {
		l.Refresh("slow")
		close(done)
	}()

	// Second cycle runs to completion against updated data.
	f.mu.Lock()
	f.gate = nil
	f.bookings = append(f.bookings, models.Booking{ID: "b3", BookingDate: "2026-01-28", Status: models.StatusPending})
	f.mu.Unlock()
	l.Refresh("fast")

	// Release the first cycle; its older result must not overwrite.
	close(gate)
	<-done

	if got := len(l.Bookings()); got != 3 {
		t.Errorf("bookings = %d, want 3 from the newer cycle", got)
	}
}

func TestApplyMatchesFullRefresh(t *testing.T) {
	f := seedFetcher()
	patched := New(f, zap.NewNop())
	patched.Refresh("test")

	inserted := models.Booking{ID: "b3", ClientPhone: "2222222222", ServiceID: "v1", BookingDate: "2026-01-28", BookingTime: "01:15 PM", Status: models.StatusPending}
	if !patched.Apply("INSERT", inserted) {
		t.Fatal("INSERT apply rejected")
	}
	completed := inserted
	completed.Status = models.StatusCompleted
	if !patched.Apply("UPDATE", completed) {
		t.Fatal("UPDATE apply rejected")
	}
	if !patched.Apply("DELETE", models.Booking{ID: "b2"}) {
		t.Fatal("DELETE apply rejected")
	}

	f.mu.Lock()
	f.bookings = []models.Booking{f.bookings[0], completed}
	f.mu.Unlock()
	refreshed := New(f, zap.NewNop())
	refreshed.Refresh("test")

	if !reflect.DeepEqual(patched.Bookings(), refreshed.Bookings()) {
		t.Errorf("patched snapshot diverged from refreshed:\n%+v\n%+v", patched.Bookings(), refreshed.Bookings())
	}
	if patched.Summary("2026-01-28") != refreshed.Summary("2026-01-28") {
		t.Errorf("summaries diverged")
	}
}

func TestApplyRejectsUnusableEvents(t *testing.T) {
	l := New(seedFetcher(), zap.NewNop())
	if l.Apply("INSERT", models.Booking{}) {
		t.Error("INSERT without id must be rejected")
	}
	if l.Apply("DELETE", models.Booking{}) {
		t.Error("DELETE without id must be rejected")
	}
	if l.Apply("TRUNCATE", models.Booking{ID: "b1"}) {
		t.Error("unknown event type must be rejected")
	}
}
