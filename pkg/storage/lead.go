package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"leadgen_go/models"
)

// LeadDB хранит записи о лидах. Лиды не изменяются и не удаляются этим
// сервисом.
type LeadDB struct {
	Conn *sql.DB
}

func NewLeadDB(conn *sql.DB) *LeadDB {
	return &LeadDB{Conn: conn}
}

// SaveLead вставляет лид. Повторная вставка того же ID молча
// игнорируется, чтобы ретрай триггера не плодил дубликаты.
func (db *LeadDB) SaveLead(ctx context.Context, lead *models.Lead) error {
	points, err := json.Marshal(lead.PainPoints)
	if err != nil {
		return err
	}
	_, err = db.Conn.ExecContext(ctx,
		`INSERT INTO leads (id, destination_id, post_title, response_type, interest_tier, pain_points, score, response_url, created_at)
                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                 ON CONFLICT DO NOTHING`,
		lead.ID, lead.DestinationID, lead.PostTitle, lead.ResponseType,
		lead.InterestTier, points, lead.Score, lead.ResponseURL, lead.CreatedAt,
	)
	return err
}

// ListLeads возвращает последние лиды, опционально начиная с минимального
// скора.
func (db *LeadDB) ListLeads(ctx context.Context, minScore, limit int) ([]models.Lead, error) {
	rows, err := db.Conn.QueryContext(ctx,
		`SELECT id, destination_id, post_title, response_type, interest_tier, pain_points, score, response_url, created_at
                 FROM leads
                 WHERE score >= $1
                 ORDER BY created_at DESC
                 LIMIT $2`,
		minScore, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		var points []byte
		if err := rows.Scan(
			&lead.ID,
			&lead.DestinationID,
			&lead.PostTitle,
			&lead.ResponseType,
			&lead.InterestTier,
			&points,
			&lead.Score,
			&lead.ResponseURL,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(points, &lead.PainPoints); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
