package booking

import "github.com/hamkade/CWS-BookingService/pkg/txmanager"

// Переиспользуем интерфейс executor из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
