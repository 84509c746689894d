package service

import (
	"context"
	"time"

	"servo_control/internal/logger"
	"servo_control/internal/models"
	"servo_control/internal/repository"

	"github.com/benbjohnson/clock"
)

// Reflector receives every display write. Implementations must be safe for concurrent use;
// polls complete on their own goroutines.
type Reflector interface {
	DisplayConnection(state models.ConnectionState, label string)
	DisplayAngle(value string)
	DisplayMode(value string)
	NotifyValidationError(message string)
}

// Controls is the operator input read by the dispatcher.
type Controls interface {
	CurrentSliderAngle() int
	CurrentSequenceText() string
	TriggeredModeID() string
}

// Monitoring exposes the reflected display to the HTTP layer.
type Monitoring interface {
	Snapshot() models.Display
	Subscribe() (<-chan models.Event, func())
}

// Sync keeps the reflector in step with the device.
// Stop Run via context cancellation in main() for graceful shutdown.
type Sync interface {
	Run(ctx context.Context)
	Poll(ctx context.Context)
	RefreshAfter(ctx context.Context, delay time.Duration) *Refresh
}

// Dispatcher turns operator input into device commands.
type Dispatcher interface {
	SendManual(ctx context.Context, c Controls) (Dispatch, error)
	SendMode(ctx context.Context, c Controls) (Dispatch, error)
	SendSequence(ctx context.Context, c Controls) (Dispatch, error)
}

// Service aggregates the sub-services used by handlers and main.
type Service struct {
	Sync
	Dispatcher
	Monitoring
}

// Options carries the timing knobs from config.
type Options struct {
	PollInterval time.Duration
	RefreshDelay time.Duration
	Clock        clock.Clock // nil = wall clock
}

// reflectorMonitor is what the hub provides: writes from the core, reads for the HTTP layer.
type reflectorMonitor interface {
	Reflector
	Monitoring
}

// NewService wires the gateway and the display hub into the sync loop and dispatcher.
func NewService(repos *repository.Repository, hub reflectorMonitor, opts Options, log *logger.Logger) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	syncSvc := NewSyncService(repos.Gateway, hub, opts.Clock, opts.PollInterval, log)
	return &Service{
		Sync:       syncSvc,
		Dispatcher: NewDispatchService(repos.Gateway, hub, syncSvc, opts.RefreshDelay, log),
		Monitoring: hub,
	}
}
