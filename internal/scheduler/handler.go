package scheduler

import (
	"net/http"
	"sync"
	"time"

	"leadgen_go/internal/httputil"
	"leadgen_go/pkg/leadgen"

	"github.com/gin-gonic/gin"
)

// Handler принимает внешний триггер и запускает прогон планировщика.
// Прогон выполняется синхронно: триггер получает сводку в ответе.
type Handler struct {
	Runner   *leadgen.Runner
	Activity leadgen.ActivityStore

	// running защищает от наложения прогонов: триггер по договорённости
	// сериализован, но дешёвая проверка дешевле гонки по счётчикам.
	mu      sync.Mutex
	running bool
}

func NewHandler(runner *leadgen.Runner, activity leadgen.ActivityStore) *Handler {
	return &Handler{Runner: runner, Activity: activity}
}

// Run — POST /scheduler/run. Возвращает 200 со сводкой даже при
// частичном выполнении; 409 — если прогон уже идёт.
func (h *Handler) Run(c *gin.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		httputil.RespondError(c, http.StatusConflict, "run already in progress")
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	summary := h.Runner.Run(c.Request.Context())
	c.JSON(http.StatusOK, summary)
}

// TodayActivity — GET /scheduler/activity, снимок дневных счётчиков.
func (h *Handler) TodayActivity(c *gin.Context) {
	day := startOfDay(time.Now(), h.Runner.Cfg.Timezone)
	activity, err := h.Activity.LoadDay(c.Request.Context(), day)
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "failed to load activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
