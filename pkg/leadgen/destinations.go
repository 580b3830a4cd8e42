package leadgen

import "leadgen_go/models"

// DefaultDestinations — статический список отслеживаемых сообществ.
// Флаг активности и дневной лимит могут быть переопределены записями в
// таблице destination_override, остальное меняется только с релизом.
func DefaultDestinations() []models.Destination {
	return []models.Destination{
		{
			ID:          "videomakers_hub",
			Title:       "Video Makers Hub",
			MemberCount: 48000,
			IsActive:    true,
			Priority:    models.PriorityHigh,
			DailyCap:    3,
			Keywords:    []string{"editing", "premiere", "render", "frustrated", "slow"},
			Category:    models.CategoryConversion,
			PromoRatio:  0.2,
			FallbackComments: []string{
				"Been there — batching my cuts and using proxy files cut my editing time in half. Happy to share my workflow if useful.",
				"What helped me most was automating the rough cut first and polishing after. Saves hours per video.",
			},
			SamplePrompts: []string{
				"Share one practical tip for speeding up a video editing workflow.",
				"Describe a common rough-cut mistake beginners make and how to avoid it.",
			},
		},
		{
			ID:          "content_creators_lounge",
			Title:       "Content Creators Lounge",
			MemberCount: 112000,
			IsActive:    true,
			Priority:    models.PriorityHigh,
			DailyCap:    3,
			Keywords:    []string{"content", "youtube", "shorts", "views", "burnout"},
			Category:    models.CategoryConversion,
			PromoRatio:  0.2,
			FallbackComments: []string{
				"Consistency beats polish early on. A repeatable template for your edits frees up energy for the actual ideas.",
			},
			SamplePrompts: []string{
				"Give a short piece of advice about staying consistent with publishing.",
			},
		},
		{
			ID:          "freelance_video_pro",
			Title:       "Freelance Video Pros",
			MemberCount: 23000,
			IsActive:    true,
			Priority:    models.PriorityMedium,
			DailyCap:    2,
			Keywords:    []string{"client", "freelance", "revision", "deadline", "pricing"},
			Category:    models.CategoryConversion,
			PromoRatio:  0.25,
			FallbackComments: []string{
				"Scope revisions in the contract — two rounds included, extras billed. It changed my client relationships completely.",
			},
			SamplePrompts: []string{
				"Share a lesson about handling endless client revision requests.",
			},
		},
		{
			ID:          "smm_daily",
			Title:       "SMM Daily",
			MemberCount: 67000,
			IsActive:    true,
			Priority:    models.PriorityMedium,
			DailyCap:    2,
			Keywords:    []string{"smm", "reels", "engagement", "promo", "ad creative"},
			Category:    models.CategoryRelationship,
			PromoRatio:  0.15,
			FallbackComments: []string{
				"Short-form with a strong first two seconds still wins. Test three hooks per idea before scaling spend.",
			},
			SamplePrompts: []string{
				"Offer one observation about what makes short-form ad creatives perform.",
			},
		},
		{
			ID:          "indie_filmmakers",
			Title:       "Indie Filmmakers",
			MemberCount: 15500,
			IsActive:    true,
			Priority:    models.PriorityLow,
			DailyCap:    1,
			Keywords:    []string{"film", "color grade", "sound design", "festival"},
			Category:    models.CategoryRelationship,
			PromoRatio:  0.1,
			FallbackComments: []string{
				"Sound carries more of the emotion than people expect — fixing the mix did more for my shorts than any color grade.",
			},
			SamplePrompts: []string{
				"Share an underrated post-production tip for short films.",
			},
		},
		{
			ID:          "marketing_growth_chat",
			Title:       "Marketing & Growth",
			MemberCount: 89000,
			IsActive:    false, // отключено: модераторы запретили внешние рекомендации
			Priority:    models.PriorityLow,
			DailyCap:    1,
			Keywords:    []string{"growth", "funnel", "conversion", "retention"},
			Category:    models.CategoryRelationship,
			PromoRatio:  0.1,
			FallbackComments: []string{
				"Retention fixes compound: a 5% churn improvement usually beats doubling top-of-funnel spend.",
			},
			SamplePrompts: []string{
				"Give one compact insight about retention versus acquisition.",
			},
		},
	}
}

// ActiveDestinations фильтрует список до активных площадок.
func ActiveDestinations(dests []models.Destination) []models.Destination {
	var active []models.Destination
	for _, d := range dests {
		if d.IsActive {
			active = append(active, d)
		}
	}
	return active
}

// defaultFallbackComment — страховка на случай площадки без заготовок:
// запасной текст обязан существовать всегда.
const defaultFallbackComment = "Good question — I ran into the same thing. Breaking the task into smaller repeatable steps helped me the most."

// FallbackComment детерминированно-случайно выбирает запасной текст
// площадки. Никогда не возвращает пустую строку.
func FallbackComment(dest models.Destination, pick func(n int) int) string {
	if len(dest.FallbackComments) == 0 {
		return defaultFallbackComment
	}
	return dest.FallbackComments[pick(len(dest.FallbackComments))]
}
