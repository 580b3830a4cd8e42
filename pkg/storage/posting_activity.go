package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"leadgen_go/models"
)

// ActivityDB отвечает за дневные счётчики ответов. Запись на дату одна,
// прогон читает и перезаписывает её целиком.
type ActivityDB struct {
	Conn *sql.DB
}

func NewActivityDB(conn *sql.DB) *ActivityDB {
	return &ActivityDB{Conn: conn}
}

// LoadDay загружает счётчики на дату. Отсутствие записи — не ошибка:
// возвращаются пустые счётчики на новую дату.
func (db *ActivityDB) LoadDay(ctx context.Context, day time.Time) (*models.PostingActivity, error) {
	var countsRaw, postedRaw []byte
	activity := models.NewPostingActivity(day)

	err := db.Conn.QueryRowContext(ctx,
		`SELECT daily_counts, last_posted, total_responses, throttle_errors
                 FROM posting_activity WHERE activity_date = $1`,
		day,
	).Scan(&countsRaw, &postedRaw, &activity.TotalResponses, &activity.ThrottleErrors)
	if err == sql.ErrNoRows {
		return activity, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(countsRaw, &activity.DailyCounts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(postedRaw, &activity.LastPosted); err != nil {
		return nil, err
	}
	return activity, nil
}

// SaveDay сохраняет счётчики на дату целиком. Повторное сохранение той
// же даты обновляет запись.
func (db *ActivityDB) SaveDay(ctx context.Context, activity *models.PostingActivity) error {
	counts, err := json.Marshal(activity.DailyCounts)
	if err != nil {
		return err
	}
	posted, err := json.Marshal(activity.LastPosted)
	if err != nil {
		return err
	}

	_, err = db.Conn.ExecContext(ctx,
		`INSERT INTO posting_activity (activity_date, daily_counts, last_posted, total_responses, throttle_errors)
                 VALUES ($1, $2, $3, $4, $5)
                 ON CONFLICT (activity_date) DO UPDATE SET
                    daily_counts = EXCLUDED.daily_counts,
                    last_posted = EXCLUDED.last_posted,
                    total_responses = EXCLUDED.total_responses,
                    throttle_errors = EXCLUDED.throttle_errors`,
		activity.Date, counts, posted, activity.TotalResponses, activity.ThrottleErrors,
	)
	return err
}
