package get_availability

import (
	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// Request модель запроса на получение свободных окон
type Request struct {
	UnitID uuid.UUID   // ID юнита
	SeatID *uuid.UUID  // ID места (опционально: окна конкретного места)
	Date   jalali.Date // Дата (джалали)
}

// Response модель ответа со свободными окнами на дату.
// Для юнитов со скрытой детализацией Windows пуст, а ответ несет только
// флаг HasAvailability.
type Response struct {
	UnitID uuid.UUID
	SeatID *uuid.UUID
	Date   jalali.Date

	OpenTime  types.TimeString // Начало рабочего окна на эту дату
	CloseTime types.TimeString // Конец рабочего окна на эту дату

	HasAvailability bool     // Есть ли хоть одно свободное окно
	DetailsHidden   bool     // Детализация скрыта настройкой юнита
	Windows         []Window // Свободные окна по возрастанию времени начала
}

// Window свободное окно внутри рабочего дня
type Window struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
