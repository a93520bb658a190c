package get_availability

import (
	"github.com/google/uuid"

	getAvailability "github.com/hamkade/CWS-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP ответ со свободными окнами юнита на дату
type AvailabilityResponse struct {
	UnitID uuid.UUID  `json:"unitId"`
	SeatID *uuid.UUID `json:"seatId,omitempty"`
	Date   string     `json:"date"`

	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`

	HasAvailability bool              `json:"hasAvailability"`
	DetailsHidden   bool              `json:"detailsHidden,omitempty"`
	Windows         []*WindowResponse `json:"windows,omitempty"`
}

// WindowResponse свободное окно
type WindowResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		UnitID:          resp.UnitID,
		SeatID:          resp.SeatID,
		Date:            resp.Date.String(),
		OpenTime:        resp.OpenTime.String(),
		CloseTime:       resp.CloseTime.String(),
		HasAvailability: resp.HasAvailability,
		DetailsHidden:   resp.DetailsHidden,
	}

	for _, w := range resp.Windows {
		out.Windows = append(out.Windows, &WindowResponse{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return out
}
