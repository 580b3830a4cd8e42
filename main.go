package main

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"time"

	"leadgen_go/internal/config"
	"leadgen_go/internal/leads"
	"leadgen_go/internal/middleware"
	"leadgen_go/internal/scheduler"
	"leadgen_go/models"
	"leadgen_go/pkg/brain"
	"leadgen_go/pkg/leadgen"
	"leadgen_go/pkg/notify"
	"leadgen_go/pkg/storage"
	"leadgen_go/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	// Подключение к БД
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	ctx := context.Background()
	db := storage.NewDB(dbConn)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Schema init failed: %v", err)
	}

	// Учётная запись, от имени которой публикуются ответы.
	account, err := db.GetPostingAccount()
	if err != nil {
		log.Fatalf("No authorized posting account: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Источник постов и публикатор комментариев — один клиент Telegram.
	source := telegram.NewChannelSource(*account, dbConn, rng)

	// Генерация текста опциональна: без ключа работаем на заготовках.
	var generator leadgen.CommentGenerator
	if cfg.GeminiAPIKey != "" {
		g, err := brain.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Gemini init failed: %v", err)
		}
		generator = g
	} else {
		log.Printf("[MAIN] GEMINI_API_KEY не задан, ответы только из заготовок")
	}

	// Алерты оператору. Ошибка конфигурации валит старт, а не прогон.
	var sender leadgen.AlertSender
	if cfg.AlertBotToken != "" {
		n, err := notify.NewTelegramNotifier(cfg.AlertBotToken, cfg.AlertChatID)
		if err != nil {
			log.Fatalf("Alert notifier init failed: %v", err)
		}
		sender = n
	} else {
		log.Printf("[MAIN] алерты отключены: ALERT_BOT_TOKEN не задан")
	}

	// Статический список площадок с переопределениями из БД.
	dests := leadgen.DefaultDestinations()
	if dests, err = storage.NewDestinationDB(dbConn).ApplyOverrides(ctx, dests); err != nil {
		log.Printf("[MAIN] переопределения площадок не загружены: %v", err)
	}
	logDestinations(dests)

	monitor := leadgen.NewRateLimitMonitor(cfg.Lead, rng)
	dispatcher := &leadgen.AlertDispatcher{
		Sender: sender,
		Log:    storage.NewAlertLogDB(dbConn),
		Cfg:    cfg.Lead,
	}

	activityDB := storage.NewActivityDB(dbConn)
	leadDB := storage.NewLeadDB(dbConn)

	scanner := leadgen.NewScanner(source, monitor, cfg.Lead)
	responder := leadgen.NewResponder(source, source, generator, dispatcher, leadDB, monitor, cfg.Lead, rng)
	runner := leadgen.NewRunner(scanner, responder, activityDB, dispatcher, monitor, dests, cfg.Lead)

	r := setupRouter(cfg, runner, activityDB, leadDB)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// Настройка маршрутов
func setupRouter(cfg *config.Config, runner *leadgen.Runner, activityDB *storage.ActivityDB, leadDB *storage.LeadDB) *gin.Engine {
	r := gin.Default()

	auth := middleware.AuthRequired(cfg.SchedulerToken)

	schedulerGroup := r.Group("/scheduler", auth)
	scheduler.SetupRoutes(schedulerGroup, scheduler.NewHandler(runner, activityDB))

	leadsGroup := r.Group("/leads", auth)
	leads.SetupRoutes(leadsGroup, leads.NewHandler(leadDB))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Printf("[ROUTER] Routes initialized:")
	log.Printf("[ROUTER] POST /scheduler/run")
	log.Printf("[ROUTER] GET /scheduler/activity")
	log.Printf("[ROUTER] GET /leads")
	log.Printf("[ROUTER] GET /health")

	return r
}

// logDestinations печатает сводку по площадкам при старте.
func logDestinations(dests []models.Destination) {
	active := 0
	for _, d := range dests {
		if d.IsActive {
			active++
		}
	}
	log.Printf("[MAIN] площадок настроено %d, активных %d", len(dests), active)
}
