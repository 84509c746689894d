package repository

import (
	"context"
	"net/http"

	"servo_control/internal/models"
)

// DeviceGateway performs all network I/O to the servo. Every failure matches ErrUnreachable.
type DeviceGateway interface {
	FetchStatus(ctx context.Context) (models.DeviceStatus, error)
	SendCommand(ctx context.Context, cmd models.Command) error
}

type Repository struct {
	Gateway DeviceGateway
}

func NewRepository(baseURL string, client *http.Client) *Repository {
	return &Repository{
		Gateway: NewDeviceHTTP(baseURL, client),
	}
}
