package models

// Account — учётная запись, от имени которой планировщик публикует ответы.
// Сервису достаточно одной авторизованной записи; сессия MTProto хранится
// в таблице account_session.
type Account struct {
	ID           int    `json:"id"`
	Phone        string `json:"phone"`
	ApiID        int    `json:"api_id"`
	ApiHash      string `json:"api_hash"`
	IsAuthorized bool   `json:"is_authorized"`
	ProxyID      *int   `json:"proxy_id"`
	Proxy        *Proxy `json:"proxy"`
}
