package service

import (
	"context"
	"sync"
	"time"

	"servo_control/internal/logger"
	"servo_control/internal/models"
	"servo_control/internal/repository"

	"github.com/benbjohnson/clock"
)

// DefaultPollInterval applies when NewSyncService gets a non-positive interval.
const DefaultPollInterval = 2 * time.Second

// SyncService polls the device status and republishes it to the reflector.
type SyncService struct {
	gateway   repository.DeviceGateway
	reflector Reflector
	clock     clock.Clock
	interval  time.Duration
	log       *logger.Logger

	mu   sync.Mutex
	root context.Context // set by Run, bounds refresh polls
}

// NewSyncService returns a loop polling every interval on clk.
func NewSyncService(gw repository.DeviceGateway, r Reflector, clk clock.Clock, interval time.Duration, log *logger.Logger) *SyncService {
	if log == nil {
		log = logger.Nop()
	}
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &SyncService{
		gateway:   gw,
		reflector: r,
		clock:     clk,
		interval:  interval,
		log:       log,
	}
}

// Run polls once right away and then on every tick until ctx is canceled.
// Ticks never wait for an outstanding poll; results publish in completion order.
func (s *SyncService) Run(ctx context.Context) {
	s.mu.Lock()
	s.root = ctx
	s.mu.Unlock()

	t := s.clock.Ticker(s.interval)
	defer t.Stop()

	go s.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go s.Poll(ctx)
		}
	}
}

// Poll performs one status read and publishes the outcome.
func (s *SyncService) Poll(ctx context.Context) {
	st, err := s.gateway.FetchStatus(ctx)
	if ctx.Err() != nil {
		// shutting down; the display is going away
		return
	}
	if err != nil {
		s.log.Warnw("poll_failed", "err", err)
		s.publishDisconnected()
		return
	}
	s.log.Debugw("poll_ok", "connection", st.Connection, "angle", st.Angle, "mode", st.Mode)
	s.reflector.DisplayConnection(models.Connected, st.Connection)
	s.reflector.DisplayAngle(st.Angle)
	s.reflector.DisplayMode(st.Mode)
}

// publishDisconnected overwrites every slot so no stale success data survives a failure.
func (s *SyncService) publishDisconnected() {
	s.reflector.DisplayConnection(models.Disconnected, models.DisconnectedLabel)
	s.reflector.DisplayAngle(models.PlaceholderAngle)
	s.reflector.DisplayMode(models.PlaceholderMode)
}

// Refresh is a single poll scheduled outside the regular cadence.
type Refresh struct {
	timer *clock.Timer
	done  chan struct{}
	once  sync.Once
}

// RefreshAfter schedules exactly one Poll after delay. The poll ignores the
// cancellation of ctx and stops with the context Run was started with.
func (s *SyncService) RefreshAfter(ctx context.Context, delay time.Duration) *Refresh {
	r := &Refresh{done: make(chan struct{})}
	r.timer = s.clock.AfterFunc(delay, func() {
		defer r.finish()
		pollCtx, cancel := s.refreshContext(ctx)
		defer cancel()
		s.Poll(pollCtx)
	})
	return r
}

// refreshContext keeps the values of ctx but takes cancellation from the loop's root context.
func (s *SyncService) refreshContext(ctx context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if root == nil {
		return pollCtx, cancel
	}
	if root.Err() != nil {
		cancel()
		return pollCtx, cancel
	}
	stop := context.AfterFunc(root, cancel)
	return pollCtx, func() {
		stop()
		cancel()
	}
}

func (r *Refresh) finish() { r.once.Do(func() { close(r.done) }) }

// Cancel stops the refresh if it has not fired yet. It reports whether it did.
func (r *Refresh) Cancel() bool {
	if r.timer.Stop() {
		r.finish()
		return true
	}
	return false
}

// Done is closed once the poll has published or the refresh was canceled.
func (r *Refresh) Done() <-chan struct{} { return r.done }

// Wait blocks until Done or ctx ends.
func (r *Refresh) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
