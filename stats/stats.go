// Package stats derives the dashboard figures from in-memory snapshots of
// the bookings and services tables. Everything here is a pure function over
// its inputs; the working set is recomputed on every refresh rather than
// maintained incrementally, which is fine at salon-day volumes.
package stats

import (
	"github.com/b-sukumar/salondost-dashboard/models"
)

type Revenue struct {
	Collected int `json:"collected"`
	Pending   int `json:"pending"`
}

type Retention struct {
	Rate      int `json:"rate"`
	Returning int `json:"returning"`
	New       int `json:"new"`
}

type Summary struct {
	Collected      int       `json:"collected"`
	PendingRevenue int       `json:"pending_revenue"`
	QueueCount     int       `json:"queue_count"`
	BookingCount   int       `json:"booking_count"`
	Retention      Retention `json:"retention"`
}

// ComputeRevenue sums service prices per booking status partition. A booking
// whose service id is unknown contributes zero; that is a referential gap,
// not an error.
func ComputeRevenue(bookings []models.Booking, services []models.Service) Revenue {
	prices := make(map[string]int, len(services))
	for _, s := range services {
		prices[s.ID] = s.Price
	}

	var rev Revenue
	for _, b := range bookings {
		switch b.Status {
		case models.StatusCompleted:
			rev.Collected += prices[b.ServiceID]
		case models.StatusPending:
			rev.Pending += prices[b.ServiceID]
		}
	}
	return rev
}

// QueueCount is the number of bookings still waiting to be served.
func QueueCount(bookings []models.Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status == models.StatusPending {
			n++
		}
	}
	return n
}

// ComputeRetention classifies each of asOf's bookings as returning or new by
// whether its phone number appears on any Completed booking strictly before
// asOf. Dates are YYYY-MM-DD strings, so < compares calendar order. The set
// only looks backward: a client seen for the first time today is new even if
// they come back tomorrow.
func ComputeRetention(bookings []models.Booking, asOf string) Retention {
	pastClients := make(map[string]struct{})
	for _, b := range bookings {
		if b.Status == models.StatusCompleted && b.BookingDate < asOf {
			pastClients[b.ClientPhone] = struct{}{}
		}
	}

	var ret Retention
	for _, b := range bookings {
		if b.BookingDate != asOf {
			continue
		}
		if _, seen := pastClients[b.ClientPhone]; seen {
			ret.Returning++
		} else {
			ret.New++
		}
	}

	today := ret.Returning + ret.New
	if today > 0 {
		// round half up to the nearest integer percentage
		ret.Rate = (200*ret.Returning + today) / (2 * today)
	}
	return ret
}

// Compute bundles the dashboard aggregates for one snapshot.
func Compute(bookings []models.Booking, services []models.Service, asOf string) Summary {
	rev := ComputeRevenue(bookings, services)
	return Summary{
		Collected:      rev.Collected,
		PendingRevenue: rev.Pending,
		QueueCount:     QueueCount(bookings),
		BookingCount:   len(bookings),
		Retention:      ComputeRetention(bookings, asOf),
	}
}
