package storage

import (
	"context"
	"database/sql"

	"leadgen_go/models"
)

// DestinationDB применяет переопределения площадок из БД: активность и
// дневной лимит можно менять без релиза, остальная конфигурация
// статическая.
type DestinationDB struct {
	Conn *sql.DB
}

func NewDestinationDB(conn *sql.DB) *DestinationDB {
	return &DestinationDB{Conn: conn}
}

// ApplyOverrides накладывает переопределения на статический список.
// Отсутствие переопределений — штатная ситуация.
func (db *DestinationDB) ApplyOverrides(ctx context.Context, dests []models.Destination) ([]models.Destination, error) {
	rows, err := db.Conn.QueryContext(ctx,
		`SELECT destination_id, is_active, daily_cap FROM destination_override`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type override struct {
		isActive sql.NullBool
		dailyCap sql.NullInt64
	}
	overrides := make(map[string]override)
	for rows.Next() {
		var id string
		var o override
		if err := rows.Scan(&id, &o.isActive, &o.dailyCap); err != nil {
			return nil, err
		}
		overrides[id] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range dests {
		o, ok := overrides[dests[i].ID]
		if !ok {
			continue
		}
		if o.isActive.Valid {
			dests[i].IsActive = o.isActive.Bool
		}
		if o.dailyCap.Valid {
			dests[i].DailyCap = int(o.dailyCap.Int64)
		}
	}
	return dests, nil
}
