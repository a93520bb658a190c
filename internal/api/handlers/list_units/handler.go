package list_units

import (
	"net/http"

	"github.com/hamkade/CWS-BookingService/internal/api/handlers"
)

type Handler struct {
	service UnitService
	logger  Logger
}

func NewHandler(service UnitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /units - Failed to list units: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /units - Units listed successfully: count=%d", len(units.Units))
	handlers.RespondJSON(w, http.StatusOK, units)
}
