package leadgen

import (
	"math/rand"
	"time"
)

// RateLimitMonitor отслеживает подряд идущие throttling-ошибки площадок
// и выдаёт задержку перед следующей пачкой запросов. Пока ошибок мало,
// задержка берётся из пула «человеческих» интервалов; при устойчивом
// троттлинге растёт экспоненциально до потолка. Джиттер и случайный
// выбор из пула делают интервалы нерегулярными — это осознанная часть
// дизайна, а не побочный эффект.
//
// Состояние живёт в пределах процесса и не сохраняется между запусками.
// Мутации происходят только из последовательного кода прогона.
type RateLimitMonitor struct {
	cfg               Config
	rng               *rand.Rand
	consecutiveErrors int
	lastErrorAt       time.Time
}

// NewRateLimitMonitor создаёт монитор с заданным источником случайности.
// Генератор передаётся снаружи, чтобы в тестах поведение было воспроизводимым.
func NewRateLimitMonitor(cfg Config, rng *rand.Rand) *RateLimitMonitor {
	return &RateLimitMonitor{cfg: cfg, rng: rng}
}

// RecordThrottle фиксирует очередной сигнал ограничения частоты.
func (m *RateLimitMonitor) RecordThrottle(now time.Time) {
	m.consecutiveErrors++
	m.lastErrorAt = now
}

// RecordCleanBatch уменьшает счётчик после пачки без единой
// throttling-ошибки. Ниже нуля счётчик не опускается.
func (m *RateLimitMonitor) RecordCleanBatch() {
	if m.consecutiveErrors > 0 {
		m.consecutiveErrors--
	}
}

// ConsecutiveErrors возвращает текущее значение счётчика.
func (m *RateLimitMonitor) ConsecutiveErrors() int { return m.consecutiveErrors }

// LastErrorAt возвращает время последнего сигнала троттлинга.
func (m *RateLimitMonitor) LastErrorAt() time.Time { return m.lastErrorAt }

// NextDelay вычисляет задержку перед следующей пачкой запросов.
func (m *RateLimitMonitor) NextDelay() time.Duration {
	base := m.baseDelay()
	jittered := m.applyJitter(base)
	if jittered > m.cfg.DelayCeiling {
		jittered = m.cfg.DelayCeiling
	}
	return jittered
}

// baseDelay — детерминированная часть расчёта: эскалация при устойчивом
// троттлинге, иначе случайный интервал из пула.
func (m *RateLimitMonitor) baseDelay() time.Duration {
	if m.consecutiveErrors > m.cfg.EscalationAfter {
		d := m.cfg.EscalationBase << uint(m.consecutiveErrors-m.cfg.EscalationAfter)
		if d > m.cfg.DelayCeiling || d <= 0 {
			d = m.cfg.DelayCeiling
		}
		return d
	}
	if len(m.cfg.DelayPool) == 0 {
		return m.cfg.EscalationBase
	}
	return m.cfg.DelayPool[m.rng.Intn(len(m.cfg.DelayPool))]
}

// applyJitter умножает задержку на случайный коэффициент в пределах
// ±JitterFraction.
func (m *RateLimitMonitor) applyJitter(d time.Duration) time.Duration {
	f := 1 - m.cfg.JitterFraction + 2*m.cfg.JitterFraction*m.rng.Float64()
	return time.Duration(float64(d) * f)
}
