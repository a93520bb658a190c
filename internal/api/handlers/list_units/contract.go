package list_units

import (
	"context"

	"github.com/hamkade/CWS-BookingService/internal/service/units/models"
)

type UnitService interface {
	ListActive(ctx context.Context) (*models.UnitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
