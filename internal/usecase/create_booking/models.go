package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Поля заявителя (имя, код Мелли, телефон) для движка непрозрачны:
// формат проверяется внешним слоем до вызова usecase.
type Request struct {
	UnitID uuid.UUID  // ID юнита
	SeatID *uuid.UUID // ID места (обязателен для юнитов с местами)

	FullName   string
	NationalID string
	Mobile     string
	Email      *string
	Gender     *string

	Class     domain.DurationClass // Класс бронирования
	StartDate jalali.Date          // Дата начала (джалали)
	EndDate   jalali.Date          // Дата конца (равна началу для однодневных)
	StartTime types.TimeString     // Время начала (только для почасового класса)
	EndTime   types.TimeString     // Время конца (только для почасового класса)

	DurationHours   *float64
	ReferralSource  string
	SpecialRequests string

	TermsAccepted   bool
	PrivacyAccepted bool
	NewsletterOptIn bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID     uuid.UUID
	UnitID uuid.UUID
	SeatID *uuid.UUID

	FullName string

	Class     domain.DurationClass
	StartDate jalali.Date
	EndDate   jalali.Date
	StartTime types.TimeString
	EndTime   types.TimeString

	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toBooking строит доменную модель бронирования со статусом pending
func (r *Request) toBooking() *domain.Booking {
	return &domain.Booking{
		ID:              uuid.New(),
		UnitID:          r.UnitID,
		SeatID:          r.SeatID,
		FullName:        r.FullName,
		NationalID:      r.NationalID,
		Mobile:          r.Mobile,
		Email:           r.Email,
		Gender:          r.Gender,
		Class:           r.Class,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationHours:   r.DurationHours,
		ReferralSource:  r.ReferralSource,
		SpecialRequests: r.SpecialRequests,
		Status:          domain.StatusPending,
		TermsAccepted:   r.TermsAccepted,
		PrivacyAccepted: r.PrivacyAccepted,
		NewsletterOptIn: r.NewsletterOptIn,
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		UnitID:    b.UnitID,
		SeatID:    b.SeatID,
		FullName:  b.FullName,
		Class:     b.Class,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
