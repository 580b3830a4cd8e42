package leads

import "github.com/gin-gonic/gin"

// SetupRoutes регистрирует маршруты чтения лидов.
func SetupRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("", h.List)
}
