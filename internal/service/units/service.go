package units

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	unitRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/unit"
	"github.com/hamkade/CWS-BookingService/internal/service/units/models"
)

// Service сервис каталога юнитов и мест
type Service struct {
	unitRepo UnitRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(unitRepo UnitRepository, logger Logger) *Service {
	return &Service{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

// ListActive получает все активные юниты с их местами
func (s *Service) ListActive(ctx context.Context) (*models.UnitListResponse, error) {
	s.logger.Info("ListActive: fetching active units")

	units, err := s.unitRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d units", len(units))
	return models.FromDomainUnitList(units), nil
}

// GetByID получает юнит по ID. Неактивный юнит снаружи неотличим от отсутствующего.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitResponse, error) {
	s.logger.Info("GetByID: fetching unit id=%s", id)

	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			s.logger.Warn("GetByID: unit id=%s not found", id)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("GetByID: repository error for unit id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !unit.IsActive {
		s.logger.Warn("GetByID: unit id=%s is not active", id)
		return nil, ErrUnitNotFound
	}

	return models.FromDomainUnit(unit), nil
}
