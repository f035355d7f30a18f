package get_capabilities

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type CapabilitiesService interface {
	GetCapabilities(ctx context.Context, actorID int64) (*models.CapabilitiesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
