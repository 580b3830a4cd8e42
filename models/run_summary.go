package models

import "time"

// TranscriptEntry — запись о каждом отправленном ответе в рамках прогона.
type TranscriptEntry struct {
	DestinationID string    `json:"destination_id"`
	PostID        string    `json:"post_id"`
	PostTitle     string    `json:"post_title"`
	Mode          string    `json:"mode"`
	Score         int       `json:"score"`
	URL           string    `json:"url"`
	Fallback      bool      `json:"fallback"` // текст взят из статических заготовок
	PostedAt      time.Time `json:"posted_at"`
}

// RunSummary — итог одного прогона планировщика. Возвращается триггеру
// с HTTP 200 даже при частичном выполнении.
type RunSummary struct {
	State               string            `json:"state"`
	Success             bool              `json:"success"`
	WindowActive        bool              `json:"window_active"`
	DestinationsScanned int               `json:"destinations_scanned"`
	PostsScanned        int               `json:"posts_scanned"`
	Opportunities       int               `json:"opportunities"`
	TotalPosted         int               `json:"total_posted"`
	PromoPosted         int               `json:"promo_posted"`
	BridgeUsed          bool              `json:"bridge_used"`
	AlertsSent          int               `json:"alerts_sent"`
	ThrottleErrors      int               `json:"throttle_errors"`
	ScanMs              int64             `json:"scan_ms"`
	RespondMs           int64             `json:"respond_ms"`
	QuotaUsage          map[string]int    `json:"quota_usage"` // счётчики площадок на конец прогона
	Transcript          []TranscriptEntry `json:"transcript"`
	StartedAt           time.Time         `json:"started_at"`
	FinishedAt          time.Time         `json:"finished_at"`
}
