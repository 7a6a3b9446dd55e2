package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ulp_backend/internal/services"
	"ulp_backend/pkg/contextkeys"
)

// SessionMiddleware проверяет Bearer-токен и кладет имя сотрудника в контекст.
// Запросы без валидного токена до защищенных маршрутов не доходят.
func SessionMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authorization header format",
			})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired session",
			})
			return
		}

		c.Set(contextkeys.StaffContextKey.String(), claims.Username)
		c.Next()
	}
}

// StaffUsername возвращает имя сотрудника, положенное SessionMiddleware
func StaffUsername(c *gin.Context) string {
	value, ok := c.Get(contextkeys.StaffContextKey.String())
	if !ok {
		return ""
	}
	username, _ := value.(string)
	return username
}
