package storage

import (
	"context"
	"database/sql"
)

// AlertLogDB ведёт журнал отправленных алертов для аудита.
type AlertLogDB struct {
	Conn *sql.DB
}

func NewAlertLogDB(conn *sql.DB) *AlertLogDB {
	return &AlertLogDB{Conn: conn}
}

// SaveAlert добавляет запись журнала. Время проставляет БД.
func (db *AlertLogDB) SaveAlert(ctx context.Context, kind, title, severity string) error {
	_, err := db.Conn.ExecContext(ctx,
		`INSERT INTO alert_log (kind, title, severity) VALUES ($1, $2, $3)`,
		kind, title, severity,
	)
	return err
}
