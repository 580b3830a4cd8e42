package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"leadgen_go/pkg/leadgen"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier доставляет алерты оператору через Bot API.
// Реализует leadgen.AlertSender: любая ошибка доставки превращается в
// false, чтобы алертинг не мог повлиять на прогон.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier проверяет токен и чат на старте, чтобы ошибка
// конфигурации всплыла до первого прогона.
func NewTelegramNotifier(token, chatIDStr string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

var _ leadgen.AlertSender = (*TelegramNotifier)(nil)

// Send форматирует уведомление и отправляет его в операторский чат.
func (n *TelegramNotifier) Send(ctx context.Context, msg leadgen.AlertMessage) bool {
	out := tgbotapi.NewMessage(n.chatID, formatAlert(msg))
	if _, err := n.bot.Send(out); err != nil {
		log.Printf("[NOTIFY] отправка алерта не удалась: %v", err)
		return false
	}
	return true
}

// severityIcon подбирает значок по важности, чтобы алерты различались
// в ленте чата с одного взгляда.
func severityIcon(severity string) string {
	switch severity {
	case leadgen.SeverityCritical:
		return "🔥"
	case leadgen.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

func formatAlert(msg leadgen.AlertMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", severityIcon(msg.Severity), msg.Title)
	for _, f := range msg.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}
