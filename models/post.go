package models

import "time"

// Post — пост, полученный из сообщества в рамках одного сканирования.
// Живёт только внутри прогона: в БД попадают лишь лиды.
type Post struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destination_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	CommentCount  int       `json:"comment_count"` // сколько ответов уже есть под постом
}

// PainPointAnalysis — результат разбора текста поста на болевые точки.
type PainPointAnalysis struct {
	Categories []string `json:"categories"`
	Score      int      `json:"score"`
}

// Opportunity — пост, аннотированный анализом и итоговым скором.
// Список возможностей всегда обрабатывается по убыванию Score.
type Opportunity struct {
	Post     Post              `json:"post"`
	Analysis PainPointAnalysis `json:"analysis"`
	Score    int               `json:"score"`
	Category string            `json:"category"` // категория площадки на момент скоринга
}
