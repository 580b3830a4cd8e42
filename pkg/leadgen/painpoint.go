package leadgen

import (
	"strings"

	"leadgen_go/models"
)

// Категории болевых точек. Порядок фиксирован, чтобы результат анализа
// был детерминированным.
const (
	PainFrustration = "frustration"
	PainBudget      = "budget"
	PainSkillGap    = "skill_gap"
	PainTime        = "time"
	PainQuality     = "quality"
	PainGeneralNeed = "general_need"
)

// painPointWeight — вклад одной совпавшей категории в под-скор анализа.
const painPointWeight = 10

// painPointKeywords сопоставляет категориям семейства ключевых фраз.
// Совпадение — вхождение подстроки в склеенный текст поста.
var painPointKeywords = []struct {
	category string
	keywords []string
}{
	{PainFrustration, []string{
		"frustrated", "frustrating", "annoying", "annoyed", "hate",
		"sick of", "tired of", "struggling", "driving me crazy",
	}},
	{PainBudget, []string{
		"can't afford", "cant afford", "too expensive", "on a budget",
		"cheap", "cost a fortune", "pricey", "low budget",
	}},
	{PainSkillGap, []string{
		"how do i", "how do you", "don't know how", "dont know how",
		"beginner", "newbie", "no experience", "teach me", "tutorial",
	}},
	{PainTime, []string{
		"no time", "takes forever", "takes too long", "so long",
		"deadline", "faster way", "quicker way", "hours editing",
	}},
	{PainQuality, []string{
		"looks bad", "low quality", "not professional", "amateur",
		"improve quality", "better results", "looks cheap",
	}},
	{PainGeneralNeed, []string{
		"any help", "need help", "advice", "recommend", "suggestions",
		"looking for", "what should i", "anyone know",
	}},
}

// AnalyzePainPoints разбирает заголовок и тело поста на категории
// болевых точек. Пустое тело — допустимый вход. Функция чистая:
// одинаковый текст всегда даёт одинаковый результат.
func AnalyzePainPoints(title, body string) models.PainPointAnalysis {
	text := strings.ToLower(title + " " + body)

	var matched []string
	for _, family := range painPointKeywords {
		for _, kw := range family.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, family.category)
				break
			}
		}
	}

	return models.PainPointAnalysis{
		Categories: matched,
		Score:      len(matched) * painPointWeight,
	}
}
