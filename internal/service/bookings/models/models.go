package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason      string  `json:"reason,omitempty"`
	CancelledBy *string `json:"cancelledBy,omitempty"` // идентификатор оператора, если отменяет не заявитель
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     uuid.UUID  `json:"id"`
	UnitID uuid.UUID  `json:"unitId"`
	SeatID *uuid.UUID `json:"seatId,omitempty"`

	FullName string  `json:"fullName"`
	Mobile   string  `json:"mobile"`
	Email    *string `json:"email,omitempty"`

	Class     string `json:"class"`
	StartDate string `json:"startDate"` // "1404-07-15" (джалали)
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime,omitempty"` // "10:00", только для почасовых
	EndTime   string `json:"endTime,omitempty"`

	ReferralSource  string `json:"referralSource,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuditRecordResponse запись журнала аудита бронирования
type AuditRecordResponse struct {
	ID             int64     `json:"id"`
	Action         string    `json:"action"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	NewStatus      *string   `json:"newStatus,omitempty"`
	ChangedBy      *string   `json:"changedBy,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// AuditTrailResponse ответ со списком записей аудита
type AuditTrailResponse struct {
	BookingID uuid.UUID              `json:"bookingId"`
	Records   []*AuditRecordResponse `json:"records"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		UnitID:          b.UnitID,
		SeatID:          b.SeatID,
		FullName:        b.FullName,
		Mobile:          b.Mobile,
		Email:           b.Email,
		Class:           string(b.Class),
		StartDate:       b.StartDate.String(),
		EndDate:         b.EndDate.String(),
		ReferralSource:  b.ReferralSource,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Class.IsTimeSlot() {
		resp.StartTime = b.StartTime.String()
		resp.EndTime = b.EndTime.String()
	}

	return resp
}

// FromDomainAuditRecords конвертирует записи аудита в DTO
func FromDomainAuditRecords(bookingID uuid.UUID, records []*domain.AuditRecord) *AuditTrailResponse {
	resp := &AuditTrailResponse{
		BookingID: bookingID,
		Records:   make([]*AuditRecordResponse, 0, len(records)),
	}

	for _, rec := range records {
		resp.Records = append(resp.Records, &AuditRecordResponse{
			ID:             rec.ID,
			Action:         string(rec.Action),
			PreviousStatus: statusString(rec.PreviousStatus),
			NewStatus:      statusString(rec.NewStatus),
			ChangedBy:      rec.ChangedBy,
			Notes:          rec.Notes,
			Timestamp:      rec.Timestamp,
		})
	}

	return resp
}

func statusString(s *domain.BookingStatus) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}
