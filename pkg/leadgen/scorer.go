package leadgen

import (
	"math"
	"strings"
	"time"

	"leadgen_go/models"
)

// ScoreLead вычисляет итоговый скор поста для площадки. Скор имеет
// смысл только в сравнении с порогами и другими постами, верхней
// границы нет. Каждое слагаемое не бывает отрицательным.
func (c Config) ScoreLead(post models.Post, dest models.Destination, analysis models.PainPointAnalysis, now time.Time) int {
	text := strings.ToLower(post.Title + " " + post.Body)

	// 1. Болевые точки.
	total := float64(analysis.Score * c.PainWeight)

	// 2. Ключевые слова площадки.
	keywordHits := 0
	for _, kw := range dest.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			keywordHits++
		}
	}
	total += float64(keywordHits * c.KeywordWeight)

	// 3. Свежесть: посты первого часа получают линейно затухающий бонус.
	ageMin := now.Sub(post.CreatedAt).Minutes()
	if ageMin >= 0 && ageMin <= 60 {
		if term := c.FreshnessMax - ageMin/c.FreshnessDecayDiv; term > 0 {
			total += term
		}
	}

	// 4. Низкая вовлечённость: под малозаметным постом ответ виднее.
	if post.CommentCount < c.EngagementThreshold {
		total += float64(c.EngagementBonus)
	}

	// 5. Бонус приоритета и категории площадки.
	total += float64(c.PriorityBonus[dest.Priority])
	total += float64(c.CategoryBonus[dest.Category])

	if total < 0 {
		return 0
	}
	return int(math.Round(total))
}

// InterestTier переводит скор в уровень интереса лида.
func (c Config) InterestTier(score int) string {
	switch {
	case score >= c.HighPriorityScore:
		return models.InterestHot
	case score >= c.MinLeadScore*2:
		return models.InterestWarm
	default:
		return models.InterestCool
	}
}
