package allocation

import (
	"context"
	"log"
	"time"
)

// RunSweeper periodically reclaims expired locks until the context is
// cancelled.  It calls the same ReleaseExpiredLocks entry point the
// availability projector uses lazily, so the ticker only improves
// promptness; correctness never depends on it.  Intended to run in
// its own goroutine from main.
func RunSweeper(ctx context.Context, svc *Service, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ReleaseExpiredLocks(ctx)
			if err != nil {
				log.Printf("sweeper: release expired locks: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweeper: reclaimed %d expired bookings", n)
			}
		}
	}
}
