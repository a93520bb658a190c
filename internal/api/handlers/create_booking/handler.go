package create_booking

import (
	"errors"
	"net/http"

	"github.com/hamkade/CWS-BookingService/internal/api/handlers"
	createBooking "github.com/hamkade/CWS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "malformed request body"
	msgInvalidDateOrTime   = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgInvalidInterval     = "invalid booking interval"
	msgInvalidDate         = "booking date must not be in the past"
	msgDateTooFar          = "booking date is too far in the future"
	msgUnitNotFound        = "unit not found"
	msgSeatNotFound        = "seat not found"
	msgSeatRequired        = "this unit is booked per seat, seatId is required"
	msgClassNotAllowed     = "duration class is not allowed for this unit"
	msgSlotNotAvailable    = "requested interval is not available"
	msgConcurrencyConflict = "booking conflicted with a concurrent request, please retry"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: unit_id=%s", req.UnitID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInterval, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: unit_id=%s", req.UnitID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: unit_id=%s", req.UnitID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgDateTooFar)

		case errors.Is(err, createBooking.ErrUnitNotFound), errors.Is(err, createBooking.ErrUnitInactive):
			h.logger.Warn("POST /bookings - Unit not found: unit_id=%s", req.UnitID)
			handlers.RespondNotFound(w, handlers.CodeUnitNotFound, msgUnitNotFound)

		case errors.Is(err, createBooking.ErrSeatNotFound):
			h.logger.Warn("POST /bookings - Seat not found: unit_id=%s, seat_id=%v", req.UnitID, req.SeatID)
			handlers.RespondNotFound(w, handlers.CodeSeatNotFound, msgSeatNotFound)

		case errors.Is(err, createBooking.ErrSeatRequired):
			h.logger.Warn("POST /bookings - Seat required: unit_id=%s", req.UnitID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgSeatRequired)

		case errors.Is(err, createBooking.ErrClassNotAllowed):
			h.logger.Warn("POST /bookings - Class not allowed: unit_id=%s, class=%s", req.UnitID, req.Class)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgClassNotAllowed)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: unit_id=%s", req.UnitID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrConcurrencyConflict):
			h.logger.Warn("POST /bookings - Concurrency conflict: unit_id=%s", req.UnitID)
			handlers.RespondConflict(w, handlers.CodeConcurrencyConflict, msgConcurrencyConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: unit_id=%s, error=%v", req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, unit_id=%s",
		result.ID, req.UnitID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
