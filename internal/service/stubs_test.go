package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"servo_control/internal/models"
	"servo_control/internal/repository"
)

// ---- Test doubles ----

type fetchResult struct {
	status models.DeviceStatus
	err    error
}

// gatewayStub answers FetchStatus from a queue (or a fixed result) and records SendCommand.
type gatewayStub struct {
	mu        sync.Mutex
	fixed     fetchResult
	queue     []chan fetchResult // when set, call i blocks on queue[i]
	fetches   int
	sendErr   error
	sent      []models.Command
	fetchedCh chan struct{}
}

func newGatewayStub() *gatewayStub {
	return &gatewayStub{fetchedCh: make(chan struct{}, 64)}
}

func (g *gatewayStub) FetchStatus(ctx context.Context) (models.DeviceStatus, error) {
	g.mu.Lock()
	idx := g.fetches
	g.fetches++
	var wait chan fetchResult
	if idx < len(g.queue) {
		wait = g.queue[idx]
	}
	res := g.fixed
	g.mu.Unlock()

	g.fetchedCh <- struct{}{}
	if wait != nil {
		res = <-wait
	}
	return res.status, res.err
}

func (g *gatewayStub) SendCommand(ctx context.Context, cmd models.Command) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, cmd)
	return g.sendErr
}

func (g *gatewayStub) fetchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches
}

func (g *gatewayStub) sentCommands() []models.Command {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Command(nil), g.sent...)
}

var _ repository.DeviceGateway = (*gatewayStub)(nil)

// reflectorStub records every write in order.
type reflectorStub struct {
	mu          sync.Mutex
	connections []models.ConnectionState
	labels      []string
	angles      []string
	modes       []string
	validation  []string
	modeWritten chan struct{}
}

func newReflectorStub() *reflectorStub {
	return &reflectorStub{modeWritten: make(chan struct{}, 64)}
}

func (r *reflectorStub) DisplayConnection(state models.ConnectionState, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections = append(r.connections, state)
	r.labels = append(r.labels, label)
}

func (r *reflectorStub) DisplayAngle(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.angles = append(r.angles, value)
}

// DisplayMode is the last write of a publish, so it signals completion.
func (r *reflectorStub) DisplayMode(value string) {
	r.mu.Lock()
	r.modes = append(r.modes, value)
	r.mu.Unlock()
	r.modeWritten <- struct{}{}
}

func (r *reflectorStub) NotifyValidationError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validation = append(r.validation, message)
}

type reflectorView struct {
	connection models.ConnectionState
	label      string
	angle      string
	mode       string
	publishes  int
}

func (r *reflectorStub) last() reflectorView {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := reflectorView{publishes: len(r.modes)}
	if n := len(r.connections); n > 0 {
		v.connection = r.connections[n-1]
		v.label = r.labels[n-1]
	}
	if n := len(r.angles); n > 0 {
		v.angle = r.angles[n-1]
	}
	if n := len(r.modes); n > 0 {
		v.mode = r.modes[n-1]
	}
	return v
}

func (r *reflectorStub) validationErrors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.validation...)
}

// controlsStub is fixed operator input.
type controlsStub struct {
	angle    int
	sequence string
	mode     string
}

func (c controlsStub) CurrentSliderAngle() int     { return c.angle }
func (c controlsStub) CurrentSequenceText() string { return c.sequence }
func (c controlsStub) TriggeredModeID() string     { return c.mode }

// refresherStub records scheduled refreshes without running them.
type refresherStub struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *refresherStub) RefreshAfter(ctx context.Context, delay time.Duration) *Refresh {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, delay)
	return &Refresh{done: make(chan struct{})}
}

func (r *refresherStub) scheduled() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// waitSignal fails the test if ch does not fire within a second.
func waitSignal(t testing.TB, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
