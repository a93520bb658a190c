package get_unit

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hamkade/CWS-BookingService/internal/api/handlers"
	"github.com/hamkade/CWS-BookingService/internal/service/units"
)

const (
	msgInvalidUnitID = "invalid unit ID"
	msgNotFound      = "unit not found"
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

// Handle GET /api/v1/units/{unitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := uuid.Parse(vars["unitId"])
	if err != nil {
		h.logger.Warn("GET /units/{id} - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUnitID)
		return
	}

	unit, err := h.service.GetByID(r.Context(), unitID)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrUnitNotFound):
			h.logger.Warn("GET /units/{id} - Unit not found: unit_id=%s", unitID)
			handlers.RespondNotFound(w, handlers.CodeUnitNotFound, msgNotFound)

		default:
			h.logger.Error("GET /units/{id} - Failed to get unit: unit_id=%s, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id} - Unit retrieved successfully: unit_id=%s", unitID)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
