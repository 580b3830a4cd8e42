package models

import "time"

// Типы ответов. Bridge — гарантированный ответ при пустом прогоне.
const (
	ResponsePromotional  = "promotional"
	ResponseExpertAdvice = "expert_advice"
	ResponseBridge       = "bridge"
)

// Уровни интереса лида, выводятся из скоринга.
const (
	InterestHot  = "hot"
	InterestWarm = "warm"
	InterestCool = "cool"
)

// Lead — запись о фактически отправленном промо-ответе.
// После создания не изменяется и не удаляется этим сервисом.
type Lead struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destination_id"`
	PostTitle     string    `json:"post_title"`
	ResponseType  string    `json:"response_type"`
	InterestTier  string    `json:"interest_tier"`
	PainPoints    []string  `json:"pain_points"`
	Score         int       `json:"score"`
	ResponseURL   string    `json:"response_url"`
	CreatedAt     time.Time `json:"created_at"`
}
