package rockset

import (
	"context"
	"time"
)

const (
	pollTick    = 250 * time.Millisecond
	pollMaxTick = 5 * time.Second
)

// pollUntil invokes check until it reports done, the check fails, or ctx
// is cancelled. The interval between checks doubles up to pollMaxTick.
//
// Bound the total wait with a context deadline.
func pollUntil(ctx context.Context, check func(context.Context) (bool, error)) error {
	tick := pollTick
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if tick < pollMaxTick {
			tick = min(tick*2, pollMaxTick)
			ticker.Reset(tick)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// waitGone polls fetch until the server reports the resource absent.
func waitGone(ctx context.Context, fetch func(context.Context) error) error {
	return pollUntil(ctx, func(ctx context.Context) (bool, error) {
		err := fetch(ctx)
		if IsNotFound(err) {
			return true, nil
		}
		return false, err
	})
}
