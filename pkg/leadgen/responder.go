package leadgen

import (
	"context"
	"log"
	"math/rand"
	"time"

	"leadgen_go/internal/common"
	"leadgen_go/models"

	"github.com/google/uuid"
)

// RespondStats — итог фазы ответов.
type RespondStats struct {
	TotalPosted int
	PromoPosted int
	Skipped     int
	BridgeUsed  bool
	Transcript  []models.TranscriptEntry
}

// Responder обрабатывает возможности строго последовательно, по одной
// публикации за раз: порядок и паузы между ответами — часть маскировки
// под живого участника, поэтому параллелить эту фазу нельзя.
type Responder struct {
	Source    PostSource
	Publisher CommentPublisher
	Generator CommentGenerator // nil — генерация отключена, всегда берём заготовки
	Alerts    *AlertDispatcher
	Leads     LeadStore
	Monitor   *RateLimitMonitor
	Cfg       Config
	Rng       *rand.Rand

	// Wait и Now подменяются в тестах.
	Wait func(ctx context.Context, d time.Duration) error
	Now  func() time.Time
}

// NewResponder собирает responder с реальными часами и задержками.
func NewResponder(source PostSource, publisher CommentPublisher, generator CommentGenerator,
	alerts *AlertDispatcher, leads LeadStore, monitor *RateLimitMonitor, cfg Config, rng *rand.Rand) *Responder {
	return &Responder{
		Source:    source,
		Publisher: publisher,
		Generator: generator,
		Alerts:    alerts,
		Leads:     leads,
		Monitor:   monitor,
		Cfg:       cfg,
		Rng:       rng,
		Wait:      common.Wait,
		Now:       time.Now,
	}
}

// Respond отвечает на возможности в порядке убывания скора, пока не
// кончится бюджет времени или список. Возможности приходят уже
// отсортированными и обрезанными до лимита прогона.
func (r *Responder) Respond(ctx context.Context, opps []models.Opportunity, dests []models.Destination,
	activity *models.PostingActivity, deadline time.Time) *RespondStats {

	stats := &RespondStats{}
	byID := destIndex(dests)

	for i, opp := range opps {
		// Бюджет проверяется перед каждой возможностью: исчерпание —
		// штатная остановка, а не ошибка.
		if r.Now().Add(r.Cfg.ResponseReserve).After(deadline) {
			log.Printf("[RESPONDER] бюджет прогона исчерпан, осталось %d возможностей", len(opps)-i)
			break
		}

		dest, ok := byID[opp.Post.DestinationID]
		if !ok {
			stats.Skipped++
			continue
		}

		if !activity.CanPost(dest.ID, dest.DailyCap) {
			log.Printf("[RESPONDER] %s на дневном лимите (%d), пропуск", dest.ID, dest.DailyCap)
			stats.Skipped++
			continue
		}

		// Вероятностный выбор режима — осознанная политика смешивания
		// контента, а не чередование по счётчику.
		mode := models.ResponseExpertAdvice
		if r.Rng.Float64() <= dest.PromoRatio {
			mode = models.ResponsePromotional
		}

		text, usedFallback := r.generateText(ctx, GenerationRequest{
			Destination: dest,
			PostTitle:   opp.Post.Title,
			PostBody:    opp.Post.Body,
			PainPoints:  opp.Analysis.Categories,
			Mode:        mode,
		}, dest)

		pub, err := r.Publisher.PublishComment(ctx, dest, opp.Post.ID, text)
		if err != nil {
			if IsThrottled(err) {
				r.Monitor.RecordThrottle(r.Now())
			}
			// Повторов внутри прогона нет: переходим к следующей возможности.
			log.Printf("[RESPONDER] публикация в %s не удалась: %v", dest.ID, err)
			continue
		}

		now := r.Now()
		activity.MarkPosted(dest.ID, now)
		stats.TotalPosted++
		stats.Transcript = append(stats.Transcript, models.TranscriptEntry{
			DestinationID: dest.ID,
			PostID:        opp.Post.ID,
			PostTitle:     opp.Post.Title,
			Mode:          mode,
			Score:         opp.Score,
			URL:           pub.URL,
			Fallback:      usedFallback,
			PostedAt:      now,
		})

		if mode == models.ResponsePromotional {
			stats.PromoPosted++
			r.recordLead(ctx, dest, opp, mode, pub.URL, now)
		}

		// Пауза между ответами, если бюджет её ещё позволяет.
		if i < len(opps)-1 {
			delay := r.Monitor.NextDelay()
			if r.Now().Add(delay + r.Cfg.ResponseReserve).After(deadline) {
				log.Printf("[RESPONDER] пауза %s не помещается в бюджет, продолжаем без неё", delay)
				continue
			}
			if err := r.Wait(ctx, delay); err != nil {
				log.Printf("[RESPONDER] ожидание прервано: %v", err)
				break
			}
		}
	}

	return stats
}

// RespondBridge — гарантированный ответ при пустом прогоне: выбирает
// площадку, в которую не писали дольше всего и у которой остался лимит,
// и отвечает на её свежайший пост по статической заготовке. Возвращает
// false, если ответить не удалось (все на лимите, нет постов, отказ).
func (r *Responder) RespondBridge(ctx context.Context, dests []models.Destination,
	activity *models.PostingActivity, deadline time.Time) (models.TranscriptEntry, bool) {

	var entry models.TranscriptEntry

	if r.Now().Add(r.Cfg.ResponseReserve).After(deadline) {
		return entry, false
	}

	dest, ok := pickBridgeDestination(ActiveDestinations(dests), activity)
	if !ok {
		log.Printf("[RESPONDER] bridge: все площадки на дневном лимите")
		return entry, false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.Cfg.FetchTimeout)
	posts, err := r.Source.FetchRecent(fetchCtx, dest, 1)
	cancel()
	if err != nil || len(posts) == 0 {
		log.Printf("[RESPONDER] bridge: не удалось получить пост %s: %v", dest.ID, err)
		return entry, false
	}
	post := posts[0]

	prompt := ""
	if len(dest.SamplePrompts) > 0 {
		prompt = dest.SamplePrompts[r.Rng.Intn(len(dest.SamplePrompts))]
	}
	text, usedFallback := r.generateText(ctx, GenerationRequest{
		Destination: dest,
		PostTitle:   post.Title,
		PostBody:    post.Body,
		Mode:        models.ResponseBridge,
		Prompt:      prompt,
	}, dest)

	pub, err := r.Publisher.PublishComment(ctx, dest, post.ID, text)
	if err != nil {
		if IsThrottled(err) {
			r.Monitor.RecordThrottle(r.Now())
		}
		log.Printf("[RESPONDER] bridge: публикация в %s не удалась: %v", dest.ID, err)
		return entry, false
	}

	now := r.Now()
	activity.MarkPosted(dest.ID, now)

	analysis := AnalyzePainPoints(post.Title, post.Body)
	score := r.Cfg.ScoreLead(post, dest, analysis, now)
	entry = models.TranscriptEntry{
		DestinationID: dest.ID,
		PostID:        post.ID,
		PostTitle:     post.Title,
		Mode:          models.ResponseBridge,
		Score:         score,
		URL:           pub.URL,
		Fallback:      usedFallback,
		PostedAt:      now,
	}

	r.recordLead(ctx, dest, models.Opportunity{
		Post:     post,
		Analysis: analysis,
		Score:    score,
		Category: dest.Category,
	}, models.ResponseBridge, pub.URL, now)

	return entry, true
}

// generateText получает текст у генератора, а при любом сбое (таймаут,
// квота, пустой ответ) возвращает детерминированную заготовку площадки.
// Второй результат — признак того, что сработал запасной путь.
func (r *Responder) generateText(ctx context.Context, req GenerationRequest, dest models.Destination) (string, bool) {
	if r.Generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, r.Cfg.GenerateTimeout)
		text, err := r.Generator.Generate(genCtx, req)
		cancel()
		if err == nil && text != "" {
			return text, false
		}
		log.Printf("[RESPONDER] генерация для %s не удалась (%v), берём заготовку", dest.ID, err)
	}
	return FallbackComment(dest, r.Rng.Intn), true
}

// recordLead сохраняет лид и при достаточном скоре шлёт алерт.
// Ошибка сохранения логируется: прогон из-за неё не падает.
func (r *Responder) recordLead(ctx context.Context, dest models.Destination, opp models.Opportunity,
	mode, url string, now time.Time) {

	lead := &models.Lead{
		ID:            uuid.NewString(),
		DestinationID: dest.ID,
		PostTitle:     opp.Post.Title,
		ResponseType:  mode,
		InterestTier:  r.Cfg.InterestTier(opp.Score),
		PainPoints:    opp.Analysis.Categories,
		Score:         opp.Score,
		ResponseURL:   url,
		CreatedAt:     now,
	}
	if r.Leads != nil {
		if err := r.Leads.SaveLead(ctx, lead); err != nil {
			log.Printf("[RESPONDER] лид не сохранён: %v", err)
		}
	}
	if r.Alerts != nil {
		r.Alerts.NotifyLead(ctx, lead)
	}
}

// pickBridgeDestination выбирает активную площадку с запасом лимита, в
// которую не писали дольше всего. Никогда не публиковавшиеся площадки
// идут первыми, при равенстве сохраняется порядок конфигурации.
func pickBridgeDestination(dests []models.Destination, activity *models.PostingActivity) (models.Destination, bool) {
	var best models.Destination
	var bestAt time.Time
	found := false
	for _, d := range dests {
		if !activity.CanPost(d.ID, d.DailyCap) {
			continue
		}
		at := activity.LastPosted[d.ID]
		if !found || at.Before(bestAt) {
			best, bestAt, found = d, at, true
		}
	}
	return best, found
}

func destIndex(dests []models.Destination) map[string]models.Destination {
	byID := make(map[string]models.Destination, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}
	return byID
}
