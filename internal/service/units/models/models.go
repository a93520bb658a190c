package models

import (
	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

// UnitResponse ответ с данными юнита и его местами
type UnitResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`

	HourlyRate  *float64 `json:"hourlyRate,omitempty"`
	DailyRate   *float64 `json:"dailyRate,omitempty"`
	WeeklyRate  *float64 `json:"weeklyRate,omitempty"`
	MonthlyRate *float64 `json:"monthlyRate,omitempty"`

	AllowedClasses []string `json:"allowedClasses"`

	Seats []*SeatResponse `json:"seats,omitempty"`
}

// SeatResponse ответ с данными места; ставки уже с учетом переопределений
type SeatResponse struct {
	ID       uuid.UUID `json:"id"`
	VisualID string    `json:"visualId"`
	Name     string    `json:"name,omitempty"`

	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	DailyRate  *float64 `json:"dailyRate,omitempty"`
}

// UnitListResponse ответ со списком юнитов
type UnitListResponse struct {
	Units []*UnitResponse `json:"units"`
}

// FromDomainUnit конвертирует domain модель в DTO.
// Неактивные места в ответ не попадают.
func FromDomainUnit(u *domain.Unit) *UnitResponse {
	resp := &UnitResponse{
		ID:             u.ID,
		Name:           u.Name,
		Type:           string(u.Type),
		Capacity:       u.Capacity,
		Description:    u.Description,
		HourlyRate:     u.HourlyRate,
		DailyRate:      u.DailyRate,
		WeeklyRate:     u.WeeklyRate,
		MonthlyRate:    u.MonthlyRate,
		AllowedClasses: allowedClasses(u),
	}

	for _, seat := range u.Seats {
		if !seat.IsActive {
			continue
		}
		resp.Seats = append(resp.Seats, &SeatResponse{
			ID:         seat.ID,
			VisualID:   seat.VisualID,
			Name:       seat.Name,
			HourlyRate: seat.EffectiveHourlyRate(u),
			DailyRate:  seat.EffectiveDailyRate(u),
		})
	}

	return resp
}

// FromDomainUnitList конвертирует список domain моделей в DTO
func FromDomainUnitList(units []*domain.Unit) *UnitListResponse {
	resp := &UnitListResponse{Units: make([]*UnitResponse, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, FromDomainUnit(u))
	}
	return resp
}

func allowedClasses(u *domain.Unit) []string {
	classes := make([]string, 0, 4)
	if u.AllowHourly {
		classes = append(classes, string(domain.ClassHourly))
	}
	if u.AllowDaily {
		classes = append(classes, string(domain.ClassDaily))
	}
	if u.AllowWeekly {
		classes = append(classes, string(domain.ClassWeekly))
	}
	if u.AllowMonthly {
		classes = append(classes, string(domain.ClassMonthly))
	}
	return classes
}
