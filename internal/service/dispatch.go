package service

import (
	"context"
	"errors"
	"time"

	"servo_control/internal/logger"
	"servo_control/internal/models"
	"servo_control/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidSequence is returned (and shown to the operator) for malformed sequence text.
var ErrInvalidSequence = errors.New("invalid sequence format: use numbers separated by commas, e.g. 0, 90, 180")

// Refresher schedules the out-of-band poll after a command.
type Refresher interface {
	RefreshAfter(ctx context.Context, delay time.Duration) *Refresh
}

// DispatchService validates operator input and sends commands to the device.
type DispatchService struct {
	gateway      repository.DeviceGateway
	reflector    Reflector
	refresher    Refresher
	refreshDelay time.Duration
	log          *logger.Logger
}

func NewDispatchService(gw repository.DeviceGateway, r Reflector, ref Refresher, refreshDelay time.Duration, log *logger.Logger) *DispatchService {
	if log == nil {
		log = logger.Nop()
	}
	return &DispatchService{
		gateway:      gw,
		reflector:    r,
		refresher:    ref,
		refreshDelay: refreshDelay,
		log:          log,
	}
}

// SendManual sends the slider angle. The input widget bounds it, so there is no validation path.
func (s *DispatchService) SendManual(ctx context.Context, c Controls) (Dispatch, error) {
	return s.send(ctx, models.Manual{Angle: c.CurrentSliderAngle()}), nil
}

// SendMode sends the mode id of the triggering control.
func (s *DispatchService) SendMode(ctx context.Context, c Controls) (Dispatch, error) {
	return s.send(ctx, models.NamedMode{Mode: c.TriggeredModeID()}), nil
}

// SendSequence validates the sequence text before sending.
// Empty text is a no-op; malformed text is reported to the operator and never sent.
func (s *DispatchService) SendSequence(ctx context.Context, c Controls) (Dispatch, error) {
	seq, err := models.ParseSequence(c.CurrentSequenceText())
	switch {
	case errors.Is(err, models.ErrEmptySequence):
		return Dispatch{ID: uuid.New(), Outcome: OutcomeSkipped}, nil
	case err != nil:
		s.log.Infow("sequence_rejected", "input", c.CurrentSequenceText())
		s.reflector.NotifyValidationError(ErrInvalidSequence.Error())
		return Dispatch{}, ErrInvalidSequence
	}
	return s.send(ctx, seq), nil
}

// send runs the gateway call. Failures are logged only; success schedules one refresh.
func (s *DispatchService) send(ctx context.Context, cmd models.Command) Dispatch {
	d := Dispatch{ID: uuid.New(), Query: repository.EncodeQuery(cmd)}

	if err := s.gateway.SendCommand(ctx, cmd); err != nil {
		s.log.Errorw("command_send_failed", "err", err, "command_id", d.ID, "query", d.Query)
		d.Outcome = OutcomeFailed
		return d
	}

	fields := []any{"command_id", d.ID, "query", d.Query}
	if seq, ok := cmd.(models.Sequence); ok {
		fields = append(fields, "steps", len(seq.Angles))
	}
	s.log.Infow("command_sent", fields...)
	d.Outcome = OutcomeSent
	// the refresh outlives the HTTP call that triggered it
	d.Refresh = s.refresher.RefreshAfter(ctx, s.refreshDelay)
	return d
}
