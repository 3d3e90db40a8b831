package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/b-sukumar/salondost-dashboard/models"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// GetMe echoes the authenticated user set by the route guard. Sign-in and
// token refresh happen against Supabase Auth directly.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := c.Get("user_id")
	email, _ := c.Get("email")
	phone, _ := c.Get("phone")
	role, _ := c.Get("role")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"user_id": userID,
			"email":   email,
			"phone":   phone,
			"role":    role,
		},
	})
}
