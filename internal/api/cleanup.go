package api

import (
	"context"
	"fmt"
	"time"

	"drifter-tracker/internal/logger"
)

// StartCleanup purges expired scans once immediately and then every interval
// until ctx is done. A non-positive interval disables it.
func (s *Server) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		s.cleanupOnce()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupOnce()
			}
		}
	}()
}

func (s *Server) cleanupOnce() int {
	n, err := s.db.CleanupExpired(s.now())
	if err != nil {
		logger.Warn("Cleanup", fmt.Sprintf("Expired scan cleanup failed: %v", err))
		return 0
	}
	if n > 0 {
		logger.Info("Cleanup", fmt.Sprintf("Removed %d expired scans", n))
	}
	return n
}
