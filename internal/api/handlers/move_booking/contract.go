package move_booking

import (
	"context"

	dragReschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/drag_reschedule"
)

type DragRescheduleUseCase interface {
	Execute(ctx context.Context, req *dragReschedule.Request) (*dragReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
