package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/models"
)

// CatalogStore serves the read-only reference tables.
type CatalogStore interface {
	ListStaff() ([]models.Stylist, error)
	ListServices() ([]models.Service, error)
}

type CatalogHandler struct {
	store CatalogStore
}

func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func (h *CatalogHandler) GetStaff(c *gin.Context) {
	staff, err := h.store.ListStaff()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch staff",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    staff,
	})
}

func (h *CatalogHandler) GetServices(c *gin.Context) {
	servicesRows, err := h.store.ListServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch services",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    servicesRows,
	})
}
