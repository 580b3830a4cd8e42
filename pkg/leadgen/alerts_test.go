package leadgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadgen_go/models"
)

func hotLead(score int) *models.Lead {
	return &models.Lead{
		ID:            "lead-1",
		DestinationID: "d1",
		PostTitle:     "post",
		ResponseType:  models.ResponsePromotional,
		InterestTier:  models.InterestHot,
		Score:         score,
		ResponseURL:   "https://t.me/d1/1",
	}
}

// TestNotifyLead_InclusiveThreshold проверяет границу алерта о лиде:
// порог включительно, на единицу ниже — тишина.
func TestNotifyLead_InclusiveThreshold(t *testing.T) {
	cfg := DefaultConfig()
	sender := &fakeSender{ok: true}
	d := &AlertDispatcher{Sender: sender, Cfg: cfg}

	if !d.NotifyLead(context.Background(), hotLead(cfg.HighPriorityScore)) {
		t.Fatalf("скор ровно на пороге должен вызывать алерт")
	}
	if d.NotifyLead(context.Background(), hotLead(cfg.HighPriorityScore-1)) {
		t.Fatalf("скор ниже порога не должен вызывать алерт")
	}
	if len(sender.msgs) != 1 {
		t.Fatalf("ожидалось 1 отправленное уведомление, получено %d", len(sender.msgs))
	}
	if sender.msgs[0].Kind != AlertHighPriorityLead {
		t.Fatalf("ожидался вид %s, получено %s", AlertHighPriorityLead, sender.msgs[0].Kind)
	}
	if d.Sent() != 1 {
		t.Fatalf("счётчик доставленных должен быть 1, получено %d", d.Sent())
	}
}

// TestDeliver_NilSender убеждается, что без отправителя алерты тихо
// пропускаются.
func TestDeliver_NilSender(t *testing.T) {
	d := &AlertDispatcher{Cfg: DefaultConfig()}
	if d.NotifyLead(context.Background(), hotLead(200)) {
		t.Fatalf("без отправителя доставка должна возвращать false")
	}
	if d.Sent() != 0 {
		t.Fatalf("счётчик доставленных должен остаться нулевым")
	}
}

// TestDeliver_SendFailure проверяет, что отказ доставки выражается как
// false и не увеличивает счётчик.
func TestDeliver_SendFailure(t *testing.T) {
	d := &AlertDispatcher{Sender: &fakeSender{ok: false}, Cfg: DefaultConfig()}
	if d.NotifyThrottling(context.Background(), 5, time.Now()) {
		t.Fatalf("при отказе отправителя ожидалось false")
	}
	if d.Sent() != 0 {
		t.Fatalf("неудачная доставка не должна засчитываться")
	}
}

// TestDeliver_LogFailureKeepsDelivery убеждается, что сбой журнала не
// отменяет доставленный алерт.
func TestDeliver_LogFailureKeepsDelivery(t *testing.T) {
	d := &AlertDispatcher{
		Sender: &fakeSender{ok: true},
		Log:    &fakeAlertLog{err: errors.New("db down")},
		Cfg:    DefaultConfig(),
	}
	if !d.NotifyBacklog(context.Background(), 12) {
		t.Fatalf("доставка должна пройти несмотря на сбой журнала")
	}
	if d.Sent() != 1 {
		t.Fatalf("доставленный алерт должен засчитаться")
	}
}

// TestDeliver_LogRecordsKind проверяет запись вида алерта в журнал.
func TestDeliver_LogRecordsKind(t *testing.T) {
	logStore := &fakeAlertLog{}
	d := &AlertDispatcher{Sender: &fakeSender{ok: true}, Log: logStore, Cfg: DefaultConfig()}

	d.NotifyThrottling(context.Background(), 4, time.Now())
	d.NotifyBacklog(context.Background(), 15)

	if len(logStore.kinds) != 2 {
		t.Fatalf("ожидалось 2 записи журнала, получено %d", len(logStore.kinds))
	}
	if logStore.kinds[0] != string(AlertSustainedThrottling) || logStore.kinds[1] != string(AlertBacklogReview) {
		t.Fatalf("в журнале неверные виды алертов: %v", logStore.kinds)
	}
}
