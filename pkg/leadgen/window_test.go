package leadgen

import (
	"testing"
	"time"
)

func windowConfig(start, end int) Config {
	cfg := DefaultConfig()
	cfg.Timezone = time.UTC
	cfg.WindowStartHour = start
	cfg.WindowEndHour = end
	return cfg
}

func atHour(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
}

// TestInOperatingWindow_DayWindow проверяет границы дневного окна:
// начало включительно, конец — нет.
func TestInOperatingWindow_DayWindow(t *testing.T) {
	cfg := windowConfig(8, 22)
	cases := []struct {
		hour int
		want bool
	}{
		{7, false},
		{8, true},
		{15, true},
		{21, true},
		{22, false},
		{23, false},
		{0, false},
	}
	for _, c := range cases {
		if got := cfg.InOperatingWindow(atHour(c.hour)); got != c.want {
			t.Fatalf("час %d: ожидалось %v, получено %v", c.hour, c.want, got)
		}
	}
}

// TestInOperatingWindow_MidnightWrap проверяет окно с переходом через
// полночь.
func TestInOperatingWindow_MidnightWrap(t *testing.T) {
	cfg := windowConfig(22, 6)
	cases := []struct {
		hour int
		want bool
	}{
		{21, false},
		{22, true},
		{23, true},
		{0, true},
		{5, true},
		{6, false},
		{12, false},
	}
	for _, c := range cases {
		if got := cfg.InOperatingWindow(atHour(c.hour)); got != c.want {
			t.Fatalf("час %d: ожидалось %v, получено %v", c.hour, c.want, got)
		}
	}
}

// TestInOperatingWindow_Degenerate убеждается, что совпадающие границы
// означают круглосуточное окно.
func TestInOperatingWindow_Degenerate(t *testing.T) {
	cfg := windowConfig(10, 10)
	for hour := 0; hour < 24; hour++ {
		if !cfg.InOperatingWindow(atHour(hour)) {
			t.Fatalf("час %d: вырожденное окно должно быть всегда открыто", hour)
		}
	}
}

// TestInOperatingWindow_Timezone проверяет, что окно считается в часовом
// поясе конфигурации, а не в поясе входного времени.
func TestInOperatingWindow_Timezone(t *testing.T) {
	cfg := DefaultConfig() // Америка/Лос-Анджелес, 8–22
	// 04:00 UTC = 20:00 (летом 21:00) предыдущего дня на западном
	// побережье: окно ещё открыто.
	janUTC := time.Date(2026, 1, 15, 4, 0, 0, 0, time.UTC)
	if !cfg.InOperatingWindow(janUTC) {
		t.Fatalf("20:00 по рабочему поясу должно попадать в окно")
	}
	// 12:00 UTC = 04:00 по рабочему поясу: окно закрыто.
	if cfg.InOperatingWindow(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("04:00 по рабочему поясу не должно попадать в окно")
	}
}

// TestIsFresh проверяет границы окна свежести.
func TestIsFresh(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if !cfg.IsFresh(now.Add(-cfg.FreshnessWindow), now) {
		t.Fatalf("пост ровно на границе окна должен считаться свежим")
	}
	if cfg.IsFresh(now.Add(-cfg.FreshnessWindow-time.Second), now) {
		t.Fatalf("пост старше окна не должен считаться свежим")
	}
	if cfg.IsFresh(now.Add(time.Minute), now) {
		t.Fatalf("пост из будущего не должен считаться свежим")
	}
	if !cfg.IsFresh(now, now) {
		t.Fatalf("пост, созданный прямо сейчас, должен считаться свежим")
	}
}
