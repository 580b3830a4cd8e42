package notify

import (
	"strings"
	"testing"

	"leadgen_go/pkg/leadgen"
)

// TestFormatAlert проверяет порядок полей и значок важности в тексте
// уведомления.
func TestFormatAlert(t *testing.T) {
	msg := leadgen.AlertMessage{
		Kind:     leadgen.AlertHighPriorityLead,
		Title:    "Новый горячий лид",
		Severity: leadgen.SeverityCritical,
		Fields: []leadgen.AlertField{
			{Name: "Площадка", Value: "videomakers_hub"},
			{Name: "Скор", Value: "150"},
		},
	}

	got := formatAlert(msg)
	want := "🔥 Новый горячий лид\nПлощадка: videomakers_hub\nСкор: 150"
	if got != want {
		t.Fatalf("неверный текст уведомления:\n%q\nожидалось:\n%q", got, want)
	}
}

// TestSeverityIcon проверяет значки всех уровней важности.
func TestSeverityIcon(t *testing.T) {
	if severityIcon(leadgen.SeverityCritical) != "🔥" {
		t.Fatalf("неверный значок для critical")
	}
	if severityIcon(leadgen.SeverityWarning) != "⚠️" {
		t.Fatalf("неверный значок для warning")
	}
	if severityIcon(leadgen.SeverityInfo) != "ℹ️" {
		t.Fatalf("неверный значок для info")
	}
	if severityIcon("unknown") != "ℹ️" {
		t.Fatalf("неизвестный уровень должен давать info-значок")
	}
}

// TestFormatAlert_NoFields убеждается, что уведомление без полей — это
// одна строка с заголовком.
func TestFormatAlert_NoFields(t *testing.T) {
	msg := leadgen.AlertMessage{Title: "Пинг", Severity: leadgen.SeverityInfo}
	if got := formatAlert(msg); got != "ℹ️ Пинг" {
		t.Fatalf("ожидалась одна строка, получено %q", got)
	}
}

// TestFormatAlert_TrailingNewline проверяет отсутствие завершающего
// переноса строки.
func TestFormatAlert_TrailingNewline(t *testing.T) {
	msg := leadgen.AlertMessage{
		Title:    "Очередь",
		Severity: leadgen.SeverityInfo,
		Fields:   []leadgen.AlertField{{Name: "Без ответа", Value: "12"}},
	}
	if strings.HasSuffix(formatAlert(msg), "\n") {
		t.Fatalf("текст уведомления не должен оканчиваться переносом строки")
	}
}
