package leadgen

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"leadgen_go/internal/common"
	"leadgen_go/models"
)

// ScanResult — итог фазы сканирования.
type ScanResult struct {
	// All — все аннотированные свежие посты, без фильтра по скору.
	All []models.Opportunity
	// HighQuality — посты со скором не ниже минимального порога,
	// отсортированные по убыванию скора (стабильно).
	HighQuality []models.Opportunity
	// Top — первые MaxResponsesPerRun из HighQuality.
	Top []models.Opportunity

	Destinations int // сколько площадок опрошено
	PostsScanned int // сколько постов получено до фильтра свежести
	Failures     int // площадки, чей запрос завершился ошибкой
	ThrottleHits int // сколько из ошибок были сигналом троттлинга
}

// Scanner опрашивает активные площадки пачками фиксированной ширины,
// аннотирует посты скором и отбирает лучшие возможности. Отказ одной
// площадки никогда не валит сканирование целиком.
type Scanner struct {
	Source  PostSource
	Monitor *RateLimitMonitor
	Cfg     Config

	// Wait подменяется в тестах, чтобы не ждать реальные задержки.
	Wait func(ctx context.Context, d time.Duration) error
}

// NewScanner собирает сканер с задержками по умолчанию.
func NewScanner(source PostSource, monitor *RateLimitMonitor, cfg Config) *Scanner {
	return &Scanner{Source: source, Monitor: monitor, Cfg: cfg, Wait: common.Wait}
}

// fetchOutcome — результат опроса одной площадки внутри пачки.
// Воркеры пишут каждый в свою ячейку; общие счётчики и монитор
// обновляются только после завершения пачки.
type fetchOutcome struct {
	dest  models.Destination
	posts []models.Post
	err   error
}

// Scan выполняет полный цикл сканирования. Контекст несёт дедлайн фазы:
// по его истечении возвращается то, что успели собрать.
func (s *Scanner) Scan(ctx context.Context, dests []models.Destination, now time.Time) *ScanResult {
	res := &ScanResult{}
	active := ActiveDestinations(dests)
	res.Destinations = len(active)

	width := s.Cfg.ScanConcurrency
	if width < 1 {
		width = 1
	}

	for start := 0; start < len(active); start += width {
		if ctx.Err() != nil {
			log.Printf("[SCANNER] бюджет фазы исчерпан, опрошено %d из %d площадок", start, len(active))
			break
		}

		end := start + width
		if end > len(active) {
			end = len(active)
		}
		batch := active[start:end]

		outcomes := make([]fetchOutcome, len(batch))
		var wg sync.WaitGroup
		for i, dest := range batch {
			wg.Add(1)
			go func(i int, dest models.Destination) {
				defer wg.Done()
				fetchCtx, cancel := context.WithTimeout(ctx, s.Cfg.FetchTimeout)
				defer cancel()
				posts, err := s.Source.FetchRecent(fetchCtx, dest, s.Cfg.FetchLimit)
				outcomes[i] = fetchOutcome{dest: dest, posts: posts, err: err}
			}(i, dest)
		}
		wg.Wait()

		// Агрегация строго после пачки: монитор и счётчики мутируются
		// только из этого потока.
		for _, out := range outcomes {
			if out.err != nil {
				res.Failures++
				if IsThrottled(out.err) {
					res.ThrottleHits++
					s.Monitor.RecordThrottle(now)
				}
				log.Printf("[SCANNER] площадка %s пропущена: %v", out.dest.ID, out.err)
				continue
			}
			res.PostsScanned += len(out.posts)
			for _, post := range out.posts {
				if !s.Cfg.IsFresh(post.CreatedAt, now) {
					continue
				}
				analysis := AnalyzePainPoints(post.Title, post.Body)
				res.All = append(res.All, models.Opportunity{
					Post:     post,
					Analysis: analysis,
					Score:    s.Cfg.ScoreLead(post, out.dest, analysis, now),
					Category: out.dest.Category,
				})
			}
		}

		// Пауза между пачками по монитору, последнюю пачку не ждём.
		if end < len(active) {
			if err := s.Wait(ctx, s.Monitor.NextDelay()); err != nil {
				log.Printf("[SCANNER] ожидание прервано: %v", err)
				break
			}
		}
	}

	if res.ThrottleHits == 0 {
		s.Monitor.RecordCleanBatch()
	}

	// Стабильная сортировка по убыванию скора: при равенстве сохраняется
	// порядок обнаружения, так что результат детерминирован.
	sort.SliceStable(res.All, func(i, j int) bool {
		return res.All[i].Score > res.All[j].Score
	})

	for _, opp := range res.All {
		if opp.Score >= s.Cfg.MinLeadScore {
			res.HighQuality = append(res.HighQuality, opp)
		}
	}
	if len(res.HighQuality) > s.Cfg.MaxResponsesPerRun {
		res.Top = res.HighQuality[:s.Cfg.MaxResponsesPerRun]
	} else {
		res.Top = res.HighQuality
	}

	log.Printf("[SCANNER] площадок %d, постов %d, возможностей %d, отказов %d (троттлинг %d)",
		res.Destinations, res.PostsScanned, len(res.HighQuality), res.Failures, res.ThrottleHits)
	return res
}
