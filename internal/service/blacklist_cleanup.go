package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSweeper periodically prunes expired blacklist rows. It runs on
// its own ticker instead of piggybacking on request handling, so pruning
// never depends on traffic patterns.
func (a *Auth) StartSweeper(t time.Duration) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Blacklist sweeper attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			if err := a.CleanupExpired(context.Background()); err != nil {
				zap.L().Error("Failed to cleanup token blacklist", zap.Error(err))
			}
		}
	}()
}
