package leadgen

import (
	"testing"
	"time"

	"leadgen_go/models"
)

func scoringDestination() models.Destination {
	return models.Destination{
		ID:       "video_editors",
		Title:    "Video Editors",
		IsActive: true,
		Priority: models.PriorityHigh,
		DailyCap: 3,
		Keywords: []string{"frustrated"},
		Category: models.CategoryRelationship,
	}
}

// TestScoreLead_FreshFrustratedPost прогоняет эталонный пост через полный
// скоринг: 20×4 болевые точки + 15 ключевое слово + ~19.33 свежесть +
// 10 вовлечённость + 25 приоритет = 149.
func TestScoreLead_FreshFrustratedPost(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	post := models.Post{
		ID:            "101",
		DestinationID: "video_editors",
		Title:         "I'm so frustrated with slow editing, any help?",
		CreatedAt:     now.Add(-2 * time.Minute),
		CommentCount:  0,
	}

	analysis := AnalyzePainPoints(post.Title, post.Body)
	if analysis.Score != 20 {
		t.Fatalf("ожидался скор анализа 20, получено %d", analysis.Score)
	}

	score := cfg.ScoreLead(post, scoringDestination(), analysis, now)
	if score != 149 {
		t.Fatalf("ожидался итоговый скор 149, получено %d", score)
	}
	if score < cfg.MinLeadScore {
		t.Fatalf("скор %d не достиг минимального порога %d", score, cfg.MinLeadScore)
	}
}

// TestScoreLead_NoFreshnessAfterHour проверяет, что посты старше часа не
// получают бонус свежести.
func TestScoreLead_NoFreshnessAfterHour(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	dest := scoringDestination()
	post := models.Post{Title: "frustrated with renders", CommentCount: 10}

	post.CreatedAt = now.Add(-61 * time.Minute)
	stale := cfg.ScoreLead(post, dest, AnalyzePainPoints(post.Title, ""), now)

	post.CreatedAt = now.Add(-10 * time.Minute)
	fresh := cfg.ScoreLead(post, dest, AnalyzePainPoints(post.Title, ""), now)

	if fresh <= stale {
		t.Fatalf("свежий пост (%d) должен оцениваться выше устаревшего (%d)", fresh, stale)
	}
	// 10×4 + 15 + 25: без свежести и без бонуса вовлечённости.
	if stale != 80 {
		t.Fatalf("ожидался скор 80 без бонуса свежести, получено %d", stale)
	}
}

// TestScoreLead_EngagementBoundary проверяет границу бонуса низкой
// вовлечённости: строго меньше порога.
func TestScoreLead_EngagementBoundary(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	dest := scoringDestination()
	post := models.Post{Title: "nothing special", CreatedAt: now.Add(-2 * time.Hour)}
	analysis := AnalyzePainPoints(post.Title, "")

	post.CommentCount = cfg.EngagementThreshold - 1
	under := cfg.ScoreLead(post, dest, analysis, now)

	post.CommentCount = cfg.EngagementThreshold
	at := cfg.ScoreLead(post, dest, analysis, now)

	if under-at != cfg.EngagementBonus {
		t.Fatalf("разница на границе должна быть %d, получено %d", cfg.EngagementBonus, under-at)
	}
}

// TestScoreLead_FuturePostNoFreshness убеждается, что пост с датой из
// будущего не получает бонус свежести.
func TestScoreLead_FuturePostNoFreshness(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	dest := scoringDestination()
	post := models.Post{Title: "hello", CreatedAt: now.Add(5 * time.Minute), CommentCount: 10}

	score := cfg.ScoreLead(post, dest, AnalyzePainPoints(post.Title, ""), now)
	// Только бонус приоритета.
	if score != 25 {
		t.Fatalf("ожидался скор 25 без бонуса свежести, получено %d", score)
	}
}

// TestInterestTier проверяет перевод скора в уровень интереса.
func TestInterestTier(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		score int
		want  string
	}{
		{cfg.HighPriorityScore, models.InterestHot},
		{cfg.HighPriorityScore + 40, models.InterestHot},
		{cfg.MinLeadScore * 2, models.InterestWarm},
		{cfg.HighPriorityScore - 1, models.InterestWarm},
		{cfg.MinLeadScore, models.InterestCool},
		{0, models.InterestCool},
	}
	for _, c := range cases {
		if got := cfg.InterestTier(c.score); got != c.want {
			t.Fatalf("скор %d: ожидался уровень %s, получено %s", c.score, c.want, got)
		}
	}
}
