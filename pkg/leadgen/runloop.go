package leadgen

import (
	"context"
	"log"
	"time"

	"leadgen_go/models"
)

// Состояния прогона. Терминальные — Done и Aborted.
const (
	StateIdle        = "idle"
	StateWindowCheck = "window_check"
	StateScanning    = "scanning"
	StateResponding  = "responding"
	StatePersisting  = "persisting"
	StateDone        = "done"
	StateAborted     = "aborted"
)

// Runner — верхнеуровневая оркестрация одного прогона планировщика.
// Прогон запускается внешним триггером, живёт в одном логическом потоке
// управления и ограничен жёстким бюджетом времени. Предполагается, что
// триггер сериализует вызовы; защита от наложения прогонов лежит на
// HTTP-обработчике.
type Runner struct {
	Scanner      *Scanner
	Responder    *Responder
	Activity     ActivityStore
	Alerts       *AlertDispatcher
	Monitor      *RateLimitMonitor
	Destinations []models.Destination
	Cfg          Config

	// Now подменяется в тестах.
	Now func() time.Time
}

// NewRunner собирает оркестратор с реальными часами.
func NewRunner(scanner *Scanner, responder *Responder, activity ActivityStore,
	alerts *AlertDispatcher, monitor *RateLimitMonitor, dests []models.Destination, cfg Config) *Runner {
	return &Runner{
		Scanner:      scanner,
		Responder:    responder,
		Activity:     activity,
		Alerts:       alerts,
		Monitor:      monitor,
		Destinations: dests,
		Cfg:          cfg,
		Now:          time.Now,
	}
}

// Run выполняет один прогон: проверка окна → сканирование → ответы →
// сохранение счётчиков → сводка. Исчерпание бюджета — штатное раннее
// завершение: оставшаяся работа пропускается, счётчики сохраняются,
// сводка возвращается всегда.
func (r *Runner) Run(ctx context.Context) *models.RunSummary {
	start := r.Now()
	summary := &models.RunSummary{
		State:      StateIdle,
		StartedAt:  start,
		QuotaUsage: map[string]int{},
	}

	alertsBefore := 0
	if r.Alerts != nil {
		alertsBefore = r.Alerts.Sent()
	}

	deadline := start.Add(r.Cfg.RunBudget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	runCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	// Проверка рабочего окна: вне его прогон завершается сразу с
	// нулевой сводкой — круглосуточная активность выдаёт бота.
	summary.State = StateWindowCheck
	if !r.Cfg.InOperatingWindow(start) {
		log.Printf("[SCHEDULER] вне рабочего окна (%02d–%02d %s), прогон пропущен",
			r.Cfg.WindowStartHour, r.Cfg.WindowEndHour, r.Cfg.Timezone)
		summary.WindowActive = false
		summary.State = StateDone
		summary.Success = true
		summary.FinishedAt = r.Now()
		return summary
	}
	summary.WindowActive = true

	day := startOfDay(start, r.Cfg.Timezone)
	activity, err := r.Activity.LoadDay(runCtx, day)
	if err != nil {
		// Деградируем до пустых счётчиков: лучше рискнуть лишним
		// постом, чем молча не сделать ничего.
		log.Printf("[SCHEDULER] счётчики за %s не загружены: %v", day.Format("2006-01-02"), err)
		activity = models.NewPostingActivity(day)
	}

	// Сканирование. Фазе отводится собственный потолок, чтобы на
	// ответы гарантированно оставалось время.
	summary.State = StateScanning
	scanBudget := r.Cfg.ScanBudget
	if remaining := deadline.Sub(r.Now()) - r.Cfg.ResponseReserve; remaining < scanBudget {
		scanBudget = remaining
	}
	scanStart := r.Now()
	var scan *ScanResult
	if scanBudget > 0 {
		scanCtx, scanCancel := context.WithTimeout(runCtx, scanBudget)
		scan = r.Scanner.Scan(scanCtx, r.Destinations, scanStart)
		scanCancel()
	} else {
		scan = &ScanResult{}
	}
	summary.ScanMs = r.Now().Sub(scanStart).Milliseconds()
	summary.DestinationsScanned = scan.Destinations
	summary.PostsScanned = scan.PostsScanned
	summary.Opportunities = len(scan.HighQuality)
	summary.ThrottleErrors = scan.ThrottleHits

	if r.Alerts != nil && r.Monitor.ConsecutiveErrors() >= r.Cfg.ThrottleAlertAfter {
		r.Alerts.NotifyThrottling(runCtx, r.Monitor.ConsecutiveErrors(), r.Monitor.LastErrorAt())
	}

	// Ответы — только если остался бюджет; иначе сразу к сохранению.
	respondStart := r.Now()
	if respondStart.Add(r.Cfg.ResponseReserve).Before(deadline) {
		summary.State = StateResponding
		stats := r.Responder.Respond(runCtx, scan.Top, r.Destinations, activity, deadline)
		summary.TotalPosted = stats.TotalPosted
		summary.PromoPosted = stats.PromoPosted
		summary.Transcript = stats.Transcript

		// Пустой прогон закрываем bridge-ответом, чтобы присутствие на
		// площадках не прерывалось.
		if len(scan.HighQuality) == 0 {
			if entry, ok := r.Responder.RespondBridge(runCtx, r.Destinations, activity, deadline); ok {
				summary.BridgeUsed = true
				summary.TotalPosted++
				summary.Transcript = append(summary.Transcript, entry)
			}
		}

		if r.Alerts != nil {
			if pending := len(scan.HighQuality) - len(scan.Top); pending >= r.Cfg.BacklogAlertAfter {
				r.Alerts.NotifyBacklog(runCtx, pending)
			}
		}
	} else {
		log.Printf("[SCHEDULER] на фазу ответов не осталось бюджета")
	}
	summary.RespondMs = r.Now().Sub(respondStart).Milliseconds()

	// Сохранение счётчиков: сбой логируется и не меняет исход прогона.
	summary.State = StatePersisting
	activity.ThrottleErrors += scan.ThrottleHits
	if err := r.Activity.SaveDay(context.WithoutCancel(runCtx), activity); err != nil {
		log.Printf("[SCHEDULER] счётчики не сохранены: %v", err)
	}

	for id, n := range activity.DailyCounts {
		summary.QuotaUsage[id] = n
	}
	if r.Alerts != nil {
		summary.AlertsSent = r.Alerts.Sent() - alertsBefore
	}

	if ctx.Err() != nil {
		// Внешняя отмена триггера — единственный случай Aborted.
		summary.State = StateAborted
		summary.Success = false
	} else {
		summary.State = StateDone
		summary.Success = true
	}
	summary.FinishedAt = r.Now()

	log.Printf("[SCHEDULER] прогон завершён: state=%s posted=%d promo=%d alerts=%d scan=%dms respond=%dms",
		summary.State, summary.TotalPosted, summary.PromoPosted, summary.AlertsSent, summary.ScanMs, summary.RespondMs)
	return summary
}

// startOfDay возвращает начало суток в рабочем часовом поясе.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
