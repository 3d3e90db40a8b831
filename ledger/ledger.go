// Package ledger owns the in-memory working set behind the dashboard: the
// day's bookings keyed by id plus the staff and service catalogs. It is
// refreshed wholesale from the store and patched in place from realtime
// change notifications.
package ledger

import (
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/b-sukumar/salondost-dashboard/metrics"
	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/stats"
	"github.com/b-sukumar/salondost-dashboard/store"
)

// Fetcher is the read side of the store the ledger refreshes from.
type Fetcher interface {
	ListBookings(f store.BookingFilter) ([]models.Booking, error)
	ListServices() ([]models.Service, error)
	ListStaff() ([]models.Stylist, error)
}

type Ledger struct {
	fetcher Fetcher
	log     *zap.Logger

	seq uint64 // refresh cycle counter

	mu       sync.RWMutex
	bookings map[string]models.Booking
	services []models.Service
	staff    []models.Stylist

	// last cycle applied per table, so a slow response from an older
	// refresh never overwrites a newer one
	bookingsSeq uint64
	servicesSeq uint64
	staffSeq    uint64
}

func New(fetcher Fetcher, log *zap.Logger) *Ledger {
	return &Ledger{
		fetcher:  fetcher,
		log:      log,
		bookings: make(map[string]models.Booking),
	}
}

// Refresh reloads all three tables. The fetches run concurrently and land
// independently: if one fails, that table keeps its previous value and the
// others still update. Returns once every fetch has settled.
func (l *Ledger) Refresh(trigger string) {
	seq := atomic.AddUint64(&l.seq, 1)
	metrics.SnapshotRefreshTotal.WithLabelValues(trigger).Inc()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rows, err := l.fetcher.ListBookings(store.BookingFilter{})
		if err != nil {
			l.log.Warn("bookings refresh failed", zap.Error(err), zap.String("trigger", trigger))
			return
		}
		byID := make(map[string]models.Booking, len(rows))
		for _, b := range rows {
			byID[b.ID] = b
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if seq < l.bookingsSeq {
			return // stale cycle
		}
		l.bookingsSeq = seq
		l.bookings = byID
	}()

	go func() {
		defer wg.Done()
		rows, err := l.fetcher.ListServices()
		if err != nil {
			l.log.Warn("services refresh failed", zap.Error(err), zap.String("trigger", trigger))
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if seq < l.servicesSeq {
			return
		}
		l.servicesSeq = seq
		l.services = rows
	}()

	go func() {
		defer wg.Done()
		rows, err := l.fetcher.ListStaff()
		if err != nil {
			l.log.Warn("staff refresh failed", zap.Error(err), zap.String("trigger", trigger))
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if seq < l.staffSeq {
			return
		}
		l.staffSeq = seq
		l.staff = rows
	}()

	wg.Wait()
}

// Apply patches a single booking change into the keyed map without a round
// trip. It reports false when the event cannot be applied safely, in which
// case the caller should fall back to a full Refresh.
func (l *Ledger) Apply(eventType string, b models.Booking) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch eventType {
	case "INSERT", "UPDATE":
		if b.ID == "" {
			return false
		}
		l.bookings[b.ID] = b
	case "DELETE":
		if b.ID == "" {
			return false
		}
		delete(l.bookings, b.ID)
	default:
		return false
	}
	return true
}

// Bookings returns the snapshot ordered newest date first, then by time and
// id for a stable listing.
func (l *Ledger) Bookings() []models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate != out[j].BookingDate {
			return out[i].BookingDate > out[j].BookingDate
		}
		if out[i].BookingTime != out[j].BookingTime {
			return out[i].BookingTime < out[j].BookingTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (l *Ledger) Services() []models.Service {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Service, len(l.services))
	copy(out, l.services)
	return out
}

func (l *Ledger) Staff() []models.Stylist {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Stylist, len(l.staff))
	copy(out, l.staff)
	return out
}

// Summary computes the dashboard aggregates for asOf (YYYY-MM-DD) from the
// current snapshot.
func (l *Ledger) Summary(asOf string) stats.Summary {
	l.mu.RLock()
	bookings := make([]models.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		bookings = append(bookings, b)
	}
	services := l.services
	l.mu.RUnlock()

	return stats.Compute(bookings, services, asOf)
}
