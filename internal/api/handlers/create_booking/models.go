package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	createBooking "github.com/hamkade/CWS-BookingService/internal/usecase/create_booking"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP запрос на создание бронирования.
// Даты джалали в формате "YYYY-MM-DD", время "HH:MM".
type CreateBookingRequest struct {
	UnitID uuid.UUID  `json:"unitId"`
	SeatID *uuid.UUID `json:"seatId,omitempty"`

	FullName   string  `json:"fullName"`
	NationalID string  `json:"nationalId"`
	Mobile     string  `json:"mobile"`
	Email      *string `json:"email,omitempty"`
	Gender     *string `json:"gender,omitempty"`

	Class     string `json:"class"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	DurationHours   *float64 `json:"durationHours,omitempty"`
	ReferralSource  string   `json:"referralSource,omitempty"`
	SpecialRequests string   `json:"specialRequests,omitempty"`

	TermsAccepted   bool `json:"termsAccepted"`
	PrivacyAccepted bool `json:"privacyAccepted"`
	NewsletterOptIn bool `json:"newsletterOptIn"`
}

// CreateBookingResponse HTTP ответ с созданным бронированием
type CreateBookingResponse struct {
	ID     uuid.UUID  `json:"id"`
	UnitID uuid.UUID  `json:"unitId"`
	SeatID *uuid.UUID `json:"seatId,omitempty"`

	FullName string `json:"fullName"`

	Class     string `json:"class"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// с парсингом дат и времен
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startDate, err := jalali.Parse(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse startDate: %w", err)
	}

	// Для однодневных бронирований конец можно опустить
	endDate := startDate
	if r.EndDate != "" {
		endDate, err = jalali.Parse(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parse endDate: %w", err)
		}
	}

	var startTime, endTime types.TimeString
	if r.StartTime != "" {
		startTime, err = types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parse startTime: %w", err)
		}
	}
	if r.EndTime != "" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("parse endTime: %w", err)
		}
	}

	return &createBooking.Request{
		UnitID:          r.UnitID,
		SeatID:          r.SeatID,
		FullName:        r.FullName,
		NationalID:      r.NationalID,
		Mobile:          r.Mobile,
		Email:           r.Email,
		Gender:          r.Gender,
		Class:           domain.DurationClass(r.Class),
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationHours:   r.DurationHours,
		ReferralSource:  r.ReferralSource,
		SpecialRequests: r.SpecialRequests,
		TermsAccepted:   r.TermsAccepted,
		PrivacyAccepted: r.PrivacyAccepted,
		NewsletterOptIn: r.NewsletterOptIn,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		ID:        resp.ID,
		UnitID:    resp.UnitID,
		SeatID:    resp.SeatID,
		FullName:  resp.FullName,
		Class:     string(resp.Class),
		StartDate: resp.StartDate.String(),
		EndDate:   resp.EndDate.String(),
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}

	if !resp.StartTime.IsZero() {
		out.StartTime = resp.StartTime.String()
	}
	if !resp.EndTime.IsZero() {
		out.EndTime = resp.EndTime.String()
	}

	return out
}
