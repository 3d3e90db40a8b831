package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/b-sukumar/salondost-dashboard/config"
)

// Claims mirrors the access token Supabase Auth issues. The user id is the
// registered "sub" claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware is the route guard: it validates the Supabase JWT and
// rejects with 401 when there is no authenticated user.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Invalid authorization header format",
				})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			// Fallback to the cookie set by the Supabase browser client
			cookieToken, err := c.Cookie("sb-access-token")
			if err != nil || cookieToken == "" {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Authorization required",
				})
				c.Abort()
				return
			}
			tokenString = cookieToken
		}

		// Parse and validate token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid token claims",
			})
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("phone", claims.Phone)
		c.Set("role", claims.Role)

		c.Next()
	}
}
