package refresh

import (
	"context"
	"time"
)

// MockLoader returns generated fixtures after a fixed artificial delay.
type MockLoader[T any] struct {
	Delay  time.Duration
	Source func(now time.Time) []T
	Now    func() time.Time
}

// Load implements Loader. It only fails when ctx ends during the delay.
func (m MockLoader[T]) Load(ctx context.Context, maxItems int) ([]T, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	items := m.Source(now)
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	return items, nil
}
