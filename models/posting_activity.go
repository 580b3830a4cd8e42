package models

import "time"

// PostingActivity — дневные счётчики ответов по площадкам.
// Логически это одна запись на дату: прогон читает её, изменяет и
// сохраняет целиком. Инвариант: счётчик площадки никогда не превышает
// её дневной лимит.
type PostingActivity struct {
	Date           time.Time            `json:"date"`
	DailyCounts    map[string]int       `json:"daily_counts"`
	LastPosted     map[string]time.Time `json:"last_posted"`
	TotalResponses int                  `json:"total_responses"`
	ThrottleErrors int                  `json:"throttle_errors"` // сводка rate-limit за день
}

// NewPostingActivity создаёт пустую запись на указанную дату.
func NewPostingActivity(date time.Time) *PostingActivity {
	return &PostingActivity{
		Date:        date,
		DailyCounts: make(map[string]int),
		LastPosted:  make(map[string]time.Time),
	}
}

// CanPost сообщает, остался ли у площадки запас по дневному лимиту.
func (a *PostingActivity) CanPost(destID string, cap int) bool {
	return a.DailyCounts[destID] < cap
}

// MarkPosted увеличивает счётчики после успешной отправки.
// Вызывается только из последовательной фазы ответов, поэтому
// синхронизация не требуется.
func (a *PostingActivity) MarkPosted(destID string, at time.Time) {
	if a.DailyCounts == nil {
		a.DailyCounts = make(map[string]int)
	}
	if a.LastPosted == nil {
		a.LastPosted = make(map[string]time.Time)
	}
	a.DailyCounts[destID]++
	a.LastPosted[destID] = at
	a.TotalResponses++
}
