package scheduler

import (
	"context"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/infrastructure/cache"
	"github.com/PoodingDev/Evento-BE/pkg/logger"
	"github.com/PoodingDev/Evento-BE/pkg/security/auth"
	"go.uber.org/zap"
)

// Scheduler runs in-process maintenance: a daily sweep of the token
// blacklist and a periodic cache health report. It is not a job queue;
// anything that must survive a restart does not belong here.
type Scheduler struct {
	redis  *cache.RedisClient
	logger *logger.Logger
	stop   chan struct{}
}

func NewScheduler(redis *cache.RedisClient, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		redis:  redis,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.runMaintenance()

	go s.reportCacheHealth()

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	untilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Maintenance scheduler initialized",
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", untilMidnight),
	)

	go func() {
		timer := time.NewTimer(untilMidnight)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.stop:
			return
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		s.runMaintenance()
		for {
			select {
			case <-ticker.C:
				s.runMaintenance()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the background loops. Safe to call once during shutdown.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runMaintenance() {
	start := time.Now()

	removed := auth.GetTokenBlacklist().RemoveExpired()

	s.logger.Info("Maintenance sweep completed",
		zap.Int("blacklist_entries_removed", removed),
		zap.Duration("duration", time.Since(start)),
	)
}

// reportCacheHealth logs pool pressure every six hours so slow connection
// leaks show up in the logs before they page anyone.
func (s *Scheduler) reportCacheHealth() {
	if s.redis == nil {
		return
	}

	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.redis.HealthCheck(ctx)
		cancel()

		if err != nil {
			s.logger.Warn("Cache health check failed", zap.Error(err))
			continue
		}

		if stats := s.redis.GetPoolStats(); stats != nil {
			s.logger.Info("Cache pool stats",
				zap.Uint32("total_conns", stats.TotalConns),
				zap.Uint32("idle_conns", stats.IdleConns),
				zap.Uint32("stale_conns", stats.StaleConns),
				zap.Uint32("timeouts", stats.Timeouts),
			)
		}
	}
}
