package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
)

// HousekeepingService periodically purges expired revocations, drops
// signing keys past their grace period and rotates the signing key when it
// is due.
type HousekeepingService struct {
	Store    store.Store
	Keys     *jwtx.KeyManager
	Logger   *slog.Logger
	Interval time.Duration

	// RotationInterval is the signing key age that triggers a rotation.
	// Zero disables rotation.
	RotationInterval time.Duration

	Now func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(store store.Store, keys *jwtx.KeyManager, logger *slog.Logger, interval, rotation time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:            store,
		Keys:             keys,
		Logger:           logger,
		Interval:         interval,
		RotationInterval: rotation,
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, waiting for a running pass to finish. Calls
// after the first are no-ops.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RunOnce performs a single pass. Each step runs even if an earlier one
// failed.
func (s *HousekeepingService) RunOnce(ctx context.Context) {
	now := s.now()
	s.Logger.Debug("starting housekeeping pass")

	if n, err := s.Store.Revocations().DeleteExpiredRevocations(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired revocations", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted expired revocations", "count", n)
	}

	if s.Keys == nil {
		return
	}

	if s.RotationInterval > 0 && now.Sub(s.Keys.CurrentKeyCreatedAt()) >= s.RotationInterval {
		if err := s.Keys.Rotate(ctx, now); err != nil {
			s.Logger.Error("failed to rotate signing key", "error", err)
		} else {
			s.Logger.Info("rotated signing key", "kid", s.Keys.CurrentKID())
		}
	}

	if n, err := s.Keys.Prune(ctx, now); err != nil {
		s.Logger.Error("failed to prune signing keys", "error", err)
	} else if n > 0 {
		s.Logger.Info("pruned retired signing keys", "count", n)
	}
}
