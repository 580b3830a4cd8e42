package common

import (
	"context"
	"time"
)

// waitStep — шаг проверки контекста во время длинных пауз, чтобы отмена
// срабатывала без многоминутного ожидания.
const waitStep = 5 * time.Second

// Wait выполняет паузу длиной d и регулярно проверяет контекст на отмену.
// Возвращает ошибку контекста, чтобы вызывающий код мог корректно
// прервать прогон.
func Wait(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; {
		step := waitStep
		if remaining < step {
			step = remaining
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step):
		}
		remaining -= step
	}
	return nil
}
