package stats

import (
	"log/slog"
	"time"
)

// StartMonthlyRegeneration runs a goroutine that regenerates every
// user's snapshot for the just-completed month on the first day of
// each month. Per-user failures are isolated inside RegenerateAll;
// close done to stop the loop.
func StartMonthlyRegeneration(svc *Service, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		var lastRun string
		for {
			select {
			case <-ticker.C:
				now := time.Now().UTC()
				if now.Day() != 1 {
					continue
				}
				tag := now.Format("2006-01")
				if tag == lastRun {
					continue
				}
				lastRun = tag

				previousMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
				slog.Info("scheduled monthly regeneration triggered", "month", previousMonth.Format("2006-01"))
				svc.RegenerateAll(previousMonth)
			case <-done:
				return
			}
		}
	}()
}
