package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/services"
)

type CustomerStore interface {
	ListCustomers() ([]models.Customer, error)
	InsertCustomer(fields map[string]interface{}) (models.Customer, error)
}

type CustomerHandler struct {
	store CustomerStore
}

func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// GetCustomers lists the directory sorted by name. The optional q parameter
// matches name (case-insensitive) or phone; filtering happens in memory over
// the fetched rows.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.store.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch customers",
		})
		return
	}

	q := strings.ToLower(c.Query("q"))
	result := make([]models.CustomerWithLinks, 0, len(customers))
	for _, customer := range customers {
		if q != "" && !strings.Contains(strings.ToLower(customer.Name), q) && !strings.Contains(customer.Phone, q) {
			continue
		}
		result = append(result, models.CustomerWithLinks{
			Customer: customer,
			CallURL:  services.CallLink(customer.Phone),
		})
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    result,
	})
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	customer, err := h.store.InsertCustomer(map[string]interface{}{
		"name":  req.Name,
		"phone": req.Phone,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to add customer",
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Customer added successfully",
		Data:    customer,
	})
}
