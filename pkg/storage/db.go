package storage

import (
	"context"
	"database/sql"
	"fmt"

	"leadgen_go/models"

	_ "github.com/lib/pq"
)

// DB — обёртка над подключением к Postgres. Все запросы пишутся руками,
// без ORM.
type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}

// InitSchema создаёт таблицы, если их ещё нет. Вызывается один раз на
// старте сервиса.
func (db *DB) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			phone TEXT NOT NULL UNIQUE,
			api_id INT NOT NULL,
			api_hash TEXT NOT NULL,
			is_authorized BOOLEAN NOT NULL DEFAULT FALSE,
			proxy_id INT
		)`,
		`CREATE TABLE IF NOT EXISTS proxy (
			id SERIAL PRIMARY KEY,
			ip TEXT NOT NULL,
			port INT NOT NULL,
			login TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN
		)`,
		`CREATE TABLE IF NOT EXISTS account_session (
			account INT PRIMARY KEY REFERENCES accounts(id),
			data_json TEXT NOT NULL,
			date_time TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS posting_activity (
			activity_date DATE PRIMARY KEY,
			daily_counts JSONB NOT NULL DEFAULT '{}',
			last_posted JSONB NOT NULL DEFAULT '{}',
			total_responses INT NOT NULL DEFAULT 0,
			throttle_errors INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY,
			destination_id TEXT NOT NULL,
			post_title TEXT NOT NULL,
			response_type TEXT NOT NULL,
			interest_tier TEXT NOT NULL,
			pain_points JSONB NOT NULL DEFAULT '[]',
			score INT NOT NULL,
			response_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS destination_override (
			destination_id TEXT PRIMARY KEY,
			is_active BOOLEAN,
			daily_cap INT
		)`,
		`CREATE TABLE IF NOT EXISTS alert_log (
			id SERIAL PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			severity TEXT NOT NULL,
			date_time TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, q := range queries {
		if _, err := db.Conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

// GetPostingAccount возвращает авторизованную учётную запись, от имени
// которой публикуются ответы. Берётся первая по ID: сервису достаточно
// одной.
func (db *DB) GetPostingAccount() (*models.Account, error) {
	var account models.Account
	account.Proxy = &models.Proxy{}
	var proxyID sql.NullInt64
	var pID sql.NullInt64
	var pIP sql.NullString
	var pPort sql.NullInt64
	var pLogin, pPassword sql.NullString
	var pActive sql.NullBool

	query := `
               SELECT a.id, a.phone, a.api_id, a.api_hash, a.is_authorized, a.proxy_id,
                      p.id, p.ip, p.port, p.login, p.password, p.is_active
               FROM accounts a
               LEFT JOIN proxy p ON a.proxy_id = p.id
               WHERE a.is_authorized = true
               ORDER BY a.id
               LIMIT 1
       `
	err := db.Conn.QueryRow(query).Scan(
		&account.ID,
		&account.Phone,
		&account.ApiID,
		&account.ApiHash,
		&account.IsAuthorized,
		&proxyID,
		&pID,
		&pIP,
		&pPort,
		&pLogin,
		&pPassword,
		&pActive,
	)
	if err != nil {
		return nil, err
	}

	if proxyID.Valid {
		id := int(proxyID.Int64)
		account.ProxyID = &id
		account.Proxy = &models.Proxy{
			ID:       int(pID.Int64),
			IP:       pIP.String,
			Port:     int(pPort.Int64),
			Login:    pLogin.String,
			Password: pPassword.String,
			IsActive: pActive,
		}
	} else {
		account.Proxy = nil
	}
	return &account, nil
}
