package config

import (
	"testing"
	"time"
)

// TestLoad_RequiresToken проверяет, что без общего секрета триггера
// сервис не стартует.
func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("ожидалась ошибка без SCHEDULER_TOKEN")
	}
}

// TestLoad_Defaults проверяет значения по умолчанию при минимальном
// окружении.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "secret")
	t.Setenv("ALERT_BOT_TOKEN", "")
	t.Setenv("ALERT_CHAT_ID", "")
	t.Setenv("WINDOW_START_HOUR", "")
	t.Setenv("WINDOW_END_HOUR", "")
	t.Setenv("RUN_BUDGET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("ожидался порт 8080, получено %s", cfg.Port)
	}
	if cfg.Lead.WindowStartHour != 8 || cfg.Lead.WindowEndHour != 22 {
		t.Fatalf("неверное окно по умолчанию: %d–%d", cfg.Lead.WindowStartHour, cfg.Lead.WindowEndHour)
	}
	if cfg.Lead.RunBudget != 4*time.Minute {
		t.Fatalf("неверный бюджет прогона: %s", cfg.Lead.RunBudget)
	}
}

// TestLoad_AlertPairValidation убеждается, что токен бота и ID чата
// задаются только вместе.
func TestLoad_AlertPairValidation(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "secret")
	t.Setenv("ALERT_BOT_TOKEN", "123:abc")
	t.Setenv("ALERT_CHAT_ID", "")
	if _, err := Load(); err == nil {
		t.Fatalf("ожидалась ошибка при токене без ID чата")
	}

	t.Setenv("ALERT_CHAT_ID", "-100200300")
	if _, err := Load(); err != nil {
		t.Fatalf("пара токен+чат должна проходить: %v", err)
	}
}

// TestLoad_Overrides проверяет переопределение параметров планировщика
// переменными окружения.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "secret")
	t.Setenv("SCHEDULER_TZ", "UTC")
	t.Setenv("WINDOW_START_HOUR", "9")
	t.Setenv("WINDOW_END_HOUR", "18")
	t.Setenv("MIN_LEAD_SCORE", "55")
	t.Setenv("RUN_BUDGET", "2m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if cfg.Lead.Timezone != time.UTC {
		t.Fatalf("часовой пояс не переопределился: %v", cfg.Lead.Timezone)
	}
	if cfg.Lead.WindowStartHour != 9 || cfg.Lead.WindowEndHour != 18 {
		t.Fatalf("окно не переопределилось: %d–%d", cfg.Lead.WindowStartHour, cfg.Lead.WindowEndHour)
	}
	if cfg.Lead.MinLeadScore != 55 {
		t.Fatalf("минимальный скор не переопределился: %d", cfg.Lead.MinLeadScore)
	}
	if cfg.Lead.RunBudget != 2*time.Minute+30*time.Second {
		t.Fatalf("бюджет прогона не переопределился: %s", cfg.Lead.RunBudget)
	}
}

// TestLoad_InvalidOverride проверяет, что мусор в числовой переменной —
// ошибка старта.
func TestLoad_InvalidOverride(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "secret")
	t.Setenv("WINDOW_START_HOUR", "noon")
	if _, err := Load(); err == nil {
		t.Fatalf("ожидалась ошибка на нечисловом значении часа")
	}
}
