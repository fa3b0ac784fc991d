package service

import (
	"context"
	"log/slog"
	"time"
)

// DefaultHousekeepingInterval is used when no interval is configured.
const DefaultHousekeepingInterval = 10 * time.Minute

// HousekeepingService periodically purges expired challenges and revocation
// records. Correctness never depends on it: expiry is checked on read.
type HousekeepingService struct {
	Challenges  *ChallengeService
	Revocations *RevocationService
	Logger      *slog.Logger
	Interval    time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval falls back to DefaultHousekeepingInterval.
func NewHousekeepingService(
	challenges *ChallengeService,
	revocations *RevocationService,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	return &HousekeepingService{
		Challenges:  challenges,
		Revocations: revocations,
		Logger:      logger,
		Interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, waiting for an in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one purge pass. Each purge is independent; one failing does not
// skip the other. Returns the number of purges that succeeded.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	var ok int

	if err := s.Challenges.Purge(ctx); err != nil {
		s.Logger.Error("failed to purge expired challenges", "error", err)
	} else {
		ok++
	}

	if err := s.Revocations.Purge(ctx); err != nil {
		s.Logger.Error("failed to purge expired revocations", "error", err)
	} else {
		ok++
	}

	s.Logger.Debug("housekeeping sweep completed", "successful_purges", ok)
	return ok
}
