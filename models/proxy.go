package models

import "database/sql"

// Proxy — SOCKS5-прокси для учётной записи. Необязателен: без прокси
// клиент подключается напрямую.
type Proxy struct {
	ID       int          `json:"id"`
	IP       string       `json:"ip"`
	Port     int          `json:"port"`
	Login    string       `json:"login"`
	Password string       `json:"password"`
	IsActive sql.NullBool `json:"is_active"`
}
