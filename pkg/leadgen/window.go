package leadgen

import "time"

// InOperatingWindow проверяет, попадает ли момент now в рабочее окно
// конфигурации. Окно задаётся часами в часовом поясе Timezone и может
// переходить через полночь (например 22–06).
func (c Config) InOperatingWindow(now time.Time) bool {
	hour := now.In(c.Timezone).Hour()
	if c.WindowStartHour == c.WindowEndHour {
		// Вырожденное окно считаем круглосуточным.
		return true
	}
	if c.WindowStartHour < c.WindowEndHour {
		return hour >= c.WindowStartHour && hour < c.WindowEndHour
	}
	return hour >= c.WindowStartHour || hour < c.WindowEndHour
}

// FreshnessCutoff возвращает нижнюю границу «золотого окна»: посты
// старше неё при сканировании отбрасываются.
func (c Config) FreshnessCutoff(now time.Time) time.Time {
	return now.Add(-c.FreshnessWindow)
}

// IsFresh сообщает, попадает ли пост в окно свежести.
func (c Config) IsFresh(createdAt, now time.Time) bool {
	return !createdAt.Before(c.FreshnessCutoff(now)) && !createdAt.After(now)
}
