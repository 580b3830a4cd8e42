package scheduler

import "github.com/gin-gonic/gin"

// SetupRoutes регистрирует маршруты планировщика. Авторизация вешается
// на группу в main.
func SetupRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/run", h.Run)
	rg.GET("/activity", h.TodayActivity)
}
