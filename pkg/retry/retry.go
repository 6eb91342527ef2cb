package retry

import (
	"context"
	"time"
)

// Do выполняет fn не более attempts раз с экспоненциальной задержкой
// между попытками (baseDelay, 2*baseDelay, 4*baseDelay, ...).
// Повторяет только ошибки, для которых retryable(err) == true;
// остальные возвращаются сразу. Учитывает отмену контекста.
func Do(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error, retryable func(error) bool) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := baseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}
