package get_capabilities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgMissingActorID   = "отсутствует ID сотрудника"
	msgEmployeeNotFound = "сотрудник не найден"
)

type Handler struct {
	service CapabilitiesService
	logger  Logger
}

func NewHandler(service CapabilitiesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/capabilities
// Флаги только для скрытия элементов интерфейса, мутации проверяют права заново
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/capabilities - Missing actor ID")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	caps, err := h.service.GetCapabilities(r.Context(), actorID)
	if err != nil {
		if errors.Is(err, bookings.ErrEmployeeNotFound) {
			h.logger.Warn("GET /me/capabilities - Employee not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)
			return
		}
		h.logger.Error("GET /me/capabilities - Failed to get capabilities: actor_id=%d, error=%v", actorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, caps)
}
