package leadgen

import (
	"context"
	"fmt"
	"log"
	"time"

	"leadgen_go/models"
)

// Виды алертов.
type AlertKind string

const (
	AlertHighPriorityLead    AlertKind = "high_priority_lead"
	AlertSustainedThrottling AlertKind = "sustained_throttling"
	AlertBacklogReview       AlertKind = "backlog_review"
)

// Уровни важности.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// AlertField — пара название/значение в теле уведомления. Срез вместо
// карты, чтобы порядок полей был детерминированным.
type AlertField struct {
	Name  string
	Value string
}

// AlertMessage — структурированное уведомление для оператора.
type AlertMessage struct {
	Kind     AlertKind
	Title    string
	Severity string
	Fields   []AlertField
}

// AlertLogStore сохраняет отправленные алерты в журнал аудита.
type AlertLogStore interface {
	SaveAlert(ctx context.Context, kind, title, severity string) error
}

// AlertDispatcher строит уведомления и отдаёт их внешнему отправителю.
// Любой сбой доставки выражается как false, не как ошибка: алертинг не
// имеет права повлиять на исход прогона.
type AlertDispatcher struct {
	Sender AlertSender   // nil — алерты отключены конфигурацией
	Log    AlertLogStore // nil — журнал не ведётся
	Cfg    Config

	sent int
}

// Sent возвращает число успешно доставленных уведомлений.
func (d *AlertDispatcher) Sent() int { return d.sent }

// NotifyLead отправляет алерт о новом лиде, если скор достиг порога
// высокого приоритета (граница включительно). Лиды ниже порога всё
// равно сохраняются в БД, просто без уведомления.
func (d *AlertDispatcher) NotifyLead(ctx context.Context, lead *models.Lead) bool {
	if lead.Score < d.Cfg.HighPriorityScore {
		return false
	}
	return d.deliver(ctx, AlertMessage{
		Kind:     AlertHighPriorityLead,
		Title:    "Новый горячий лид",
		Severity: SeverityCritical,
		Fields: []AlertField{
			{"Площадка", lead.DestinationID},
			{"Пост", lead.PostTitle},
			{"Скор", fmt.Sprintf("%d", lead.Score)},
			{"Уровень", lead.InterestTier},
			{"Ответ", lead.ResponseURL},
		},
	})
}

// NotifyThrottling сигнализирует об устойчивом троттлинге со стороны
// площадок.
func (d *AlertDispatcher) NotifyThrottling(ctx context.Context, consecutive int, lastAt time.Time) bool {
	return d.deliver(ctx, AlertMessage{
		Kind:     AlertSustainedThrottling,
		Title:    "Устойчивый троттлинг площадок",
		Severity: SeverityWarning,
		Fields: []AlertField{
			{"Ошибок подряд", fmt.Sprintf("%d", consecutive)},
			{"Последняя", lastAt.Format(time.RFC3339)},
		},
	})
}

// NotifyBacklog сообщает, что за прогон накопилось больше возможностей,
// чем удалось обработать.
func (d *AlertDispatcher) NotifyBacklog(ctx context.Context, pending int) bool {
	return d.deliver(ctx, AlertMessage{
		Kind:     AlertBacklogReview,
		Title:    "Очередь возможностей требует внимания",
		Severity: SeverityInfo,
		Fields: []AlertField{
			{"Без ответа", fmt.Sprintf("%d", pending)},
		},
	})
}

func (d *AlertDispatcher) deliver(ctx context.Context, msg AlertMessage) bool {
	if d.Sender == nil {
		log.Printf("[ALERT] отправитель не настроен, пропущено: %s", msg.Title)
		return false
	}
	if !d.Sender.Send(ctx, msg) {
		log.Printf("[ALERT] доставка не удалась: %s", msg.Title)
		return false
	}
	d.sent++
	if d.Log != nil {
		if err := d.Log.SaveAlert(ctx, string(msg.Kind), msg.Title, msg.Severity); err != nil {
			// Журнал — best effort, сбой записи не отменяет доставку.
			log.Printf("[ALERT] запись в журнал не удалась: %v", err)
		}
	}
	return true
}
