package repository

import (
	"errors"
	"fmt"
)

// ErrUnreachable covers every transport, status-code and decode failure talking to the device.
var ErrUnreachable = errors.New("device unreachable")

// GatewayError describes a failed device operation.
type GatewayError struct {
	Op     string // "status" | "control"
	Status int    // HTTP status; 0 when no response arrived
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: http status %d", ErrUnreachable, e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrUnreachable, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrUnreachable, e.Op)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is makes every GatewayError match ErrUnreachable.
func (e *GatewayError) Is(target error) bool { return target == ErrUnreachable }
