package get_unit

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/service/units/models"
)

type UnitService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UnitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
