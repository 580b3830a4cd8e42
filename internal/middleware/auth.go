package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequired проверяет Bearer-токен триггера. Токен приходит из
// конфигурации: проверка его наличия выполняется на старте сервиса.
func AuthRequired(token string) gin.HandlerFunc {
	expected := "Bearer " + token
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
