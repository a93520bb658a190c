package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hamkade/CWS-BookingService/internal/api/handlers"
	getAvailability "github.com/hamkade/CWS-BookingService/internal/usecase/get_availability"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
)

const (
	msgInvalidUnitID = "invalid unit ID"
	msgInvalidSeatID = "invalid seat ID"
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"
	msgDateRequired  = "date query parameter is required"
	msgBadDate       = "date must not be in the past and within the booking horizon"
	msgUnitNotFound  = "unit not found"
	msgSeatNotFound  = "seat not found"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/availability?date=YYYY-MM-DD[&seatId=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := uuid.Parse(vars["unitId"])
	if err != nil {
		h.logger.Warn("GET /units/{id}/availability - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUnitID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /units/{id}/availability - Missing date: unit_id=%s", unitID)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgDateRequired)
		return
	}

	date, err := jalali.Parse(dateStr)
	if err != nil {
		h.logger.Warn("GET /units/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDate)
		return
	}

	var seatID *uuid.UUID
	if seatStr := r.URL.Query().Get("seatId"); seatStr != "" {
		parsed, err := uuid.Parse(seatStr)
		if err != nil {
			h.logger.Warn("GET /units/{id}/availability - Invalid seat ID %q: %v", seatStr, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidSeatID)
			return
		}
		seatID = &parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		UnitID: unitID,
		SeatID: seatID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidDate),
			errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /units/{id}/availability - Bad date: unit_id=%s, date=%s", unitID, dateStr)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgBadDate)

		case errors.Is(err, getAvailability.ErrUnitNotFound):
			h.logger.Warn("GET /units/{id}/availability - Unit not found: unit_id=%s", unitID)
			handlers.RespondNotFound(w, handlers.CodeUnitNotFound, msgUnitNotFound)

		case errors.Is(err, getAvailability.ErrSeatNotFound):
			h.logger.Warn("GET /units/{id}/availability - Seat not found: unit_id=%s, seat_id=%v", unitID, seatID)
			handlers.RespondNotFound(w, handlers.CodeSeatNotFound, msgSeatNotFound)

		default:
			h.logger.Error("GET /units/{id}/availability - Failed: unit_id=%s, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/availability - Availability retrieved: unit_id=%s, date=%s, windows=%d",
		unitID, dateStr, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
