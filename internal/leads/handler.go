package leads

import (
	"net/http"
	"strconv"

	"leadgen_go/internal/httputil"
	"leadgen_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// Handler отдаёт сохранённые лиды. Запись лидов делает планировщик,
// здесь только чтение.
type Handler struct {
	DB *storage.LeadDB
}

func NewHandler(db *storage.LeadDB) *Handler {
	return &Handler{DB: db}
}

// List — GET /leads?min_score=&limit=.
func (h *Handler) List(c *gin.Context) {
	minScore := 0
	if v := c.Query("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(c, http.StatusBadRequest, "invalid min_score")
			return
		}
		minScore = n
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			httputil.RespondError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	leads, err := h.DB.ListLeads(c.Request.Context(), minScore, limit)
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "failed to list leads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads, "count": len(leads)})
}
