package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ActorID    int64     // ID сотрудника (для логирования, не влияет на результат)
	ServiceID  int64     // ID услуги
	EmployeeID int64     // ID сотрудника-исполнителя
	Date       time.Time // Дата для получения слотов (без времени)
	Policy     domain.Policy
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	ServiceID  int64     // ID услуги
	EmployeeID int64     // ID сотрудника
	Slots      []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность слота в минутах
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Общее количество мест
}
