package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/ledger"
	"github.com/b-sukumar/salondost-dashboard/models"
)

type CustomerCounter interface {
	CountCustomers() (int64, error)
}

type DashboardHandler struct {
	ledger    *ledger.Ledger
	customers CustomerCounter
	loc       *time.Location
}

func NewDashboardHandler(led *ledger.Ledger, customers CustomerCounter, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{
		ledger:    led,
		customers: customers,
		loc:       loc,
	}
}

// GetDashboard serves the aggregates for one day from the live snapshot.
// The date defaults to today on the salon's clock. The customer count is an
// independent fetch; if it fails the rest of the payload still goes out.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	asOf := c.Query("date")
	if asOf == "" {
		asOf = time.Now().In(h.loc).Format("2006-01-02")
	}

	data := gin.H{
		"date":  asOf,
		"stats": h.ledger.Summary(asOf),
	}
	if count, err := h.customers.CountCustomers(); err == nil {
		data["customer_count"] = count
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data,
	})
}
