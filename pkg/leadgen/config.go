package leadgen

import (
	"time"

	"leadgen_go/models"
)

// Config собирает все числовые параметры планировщика. Значения по
// умолчанию — эталонные; переопределяются переменными окружения в main.
type Config struct {
	// Часовой пояс и рабочее окно. Вне окна прогон завершается сразу,
	// чтобы активность не выглядела круглосуточной.
	Timezone        *time.Location
	WindowStartHour int
	WindowEndHour   int

	// FreshnessWindow — за какой хвост времени посты считаются свежими.
	FreshnessWindow time.Duration

	// Пороги скоринга.
	MinLeadScore      int // ниже — пост не считается возможностью
	HighPriorityScore int // начиная с этого значения отправляется алерт (включительно)

	// Веса скоринга (см. ScoreLead).
	PainWeight          int
	KeywordWeight       int
	FreshnessMax        float64
	FreshnessDecayDiv   float64
	EngagementBonus     int
	EngagementThreshold int
	PriorityBonus       map[models.DestinationPriority]int
	CategoryBonus       map[string]int

	// Лимиты прогона.
	MaxResponsesPerRun int
	ScanConcurrency    int
	FetchLimit         int

	// Бюджеты времени.
	RunBudget       time.Duration // жёсткий потолок всего прогона
	ScanBudget      time.Duration // потолок фазы сканирования
	FetchTimeout    time.Duration // на один запрос к площадке
	GenerateTimeout time.Duration // на генерацию одного комментария
	ResponseReserve time.Duration // минимум, при котором ещё имеет смысл отвечать

	// Задержки между запросами (см. RateLimitMonitor).
	DelayPool       []time.Duration
	DelayCeiling    time.Duration
	EscalationBase  time.Duration
	EscalationAfter int
	JitterFraction  float64

	// Пороги системных алертов.
	ThrottleAlertAfter int // подряд идущих throttling-ошибок
	BacklogAlertAfter  int // возможностей, оставшихся без ответа за прогон
}

// DefaultConfig возвращает эталонную конфигурацию.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		Timezone:        loc,
		WindowStartHour: 8,
		WindowEndHour:   22,

		FreshnessWindow: 45 * time.Minute,

		MinLeadScore:      40,
		HighPriorityScore: 120,

		PainWeight:          4,
		KeywordWeight:       15,
		FreshnessMax:        20,
		FreshnessDecayDiv:   3,
		EngagementBonus:     10,
		EngagementThreshold: 5,
		PriorityBonus: map[models.DestinationPriority]int{
			models.PriorityHigh:   25,
			models.PriorityMedium: 15,
			models.PriorityLow:    5,
		},
		CategoryBonus: map[string]int{
			models.CategoryConversion:   10,
			models.CategoryRelationship: 0,
		},

		MaxResponsesPerRun: 3,
		ScanConcurrency:    4,
		FetchLimit:         15,

		RunBudget:       4 * time.Minute,
		ScanBudget:      90 * time.Second,
		FetchTimeout:    10 * time.Second,
		GenerateTimeout: 20 * time.Second,
		ResponseReserve: 15 * time.Second,

		DelayPool: []time.Duration{
			3 * time.Second,
			8 * time.Second,
			15 * time.Second,
			30 * time.Second,
			45 * time.Second,
			90 * time.Second,
			2 * time.Minute,
		},
		DelayCeiling:    2 * time.Minute,
		EscalationBase:  time.Minute,
		EscalationAfter: 2,
		JitterFraction:  0.15,

		ThrottleAlertAfter: 3,
		BacklogAlertAfter:  10,
	}
}
