package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/get_booking"
	getBookingAuditHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/get_booking_audit"
	getUnitHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/get_unit"
	listUnitsHandler "github.com/hamkade/CWS-BookingService/internal/api/handlers/list_units"
	"github.com/hamkade/CWS-BookingService/internal/api/middleware"
	"github.com/hamkade/CWS-BookingService/internal/config"
	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/internal/infra/notify"
	auditRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/audit"
	bookingRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/booking"
	overrideRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/override"
	unitRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/unit"
	bookingsService "github.com/hamkade/CWS-BookingService/internal/service/bookings"
	unitsService "github.com/hamkade/CWS-BookingService/internal/service/units"
	createBookingUC "github.com/hamkade/CWS-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/hamkade/CWS-BookingService/internal/usecase/get_availability"
	"github.com/hamkade/CWS-BookingService/pkg/logger"
	"github.com/hamkade/CWS-BookingService/pkg/metrics"
	"github.com/hamkade/CWS-BookingService/pkg/txmanager"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// bookingNotifier объединяет события, нужные usecase создания и сервису отмены
type bookingNotifier interface {
	BookingCreated(ctx context.Context, bookingID uuid.UUID) error
	BookingCancelled(ctx context.Context, bookingID uuid.UUID) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CWS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочее окно по умолчанию
	defaultOpen, err := types.NewTimeStringFromString(cfg.Booking.DefaultOpenTime)
	if err != nil {
		log.Fatal("Invalid default_open_time %q: %v", cfg.Booking.DefaultOpenTime, err)
	}
	defaultClose, err := types.NewTimeStringFromString(cfg.Booking.DefaultCloseTime)
	if err != nil {
		log.Fatal("Invalid default_close_time %q: %v", cfg.Booking.DefaultCloseTime, err)
	}
	defaultWindow := domain.AvailabilityWindow{StartTime: defaultOpen, EndTime: defaultClose}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Metrics.Enabled {
		prometheus.MustRegister(collectors.NewDBStatsCollector(db, cfg.Database.DBName))
		log.Info("Database pool metrics collection started")
	}

	// Публикация событий бронирования (опционально)
	var notifier bookingNotifier
	var publisher *notify.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = notify.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
		log.Info("Notification publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		notifier = notify.NoopPublisher{}
		log.Info("Notification publishing disabled")
	}

	// Доменные метрики: заглушка, когда сбор выключен
	var ucMetrics createBookingUC.MetricsRecorder = createBookingUC.NoopMetrics{}
	var svcMetrics bookingsService.MetricsRecorder = bookingsService.NoopMetrics{}
	var txMetrics txmanager.MetricsRecorder = txmanager.NoopMetrics{}
	if cfg.Metrics.Enabled {
		ucMetrics = metricsCollector
		svcMetrics = metricsCollector
		txMetrics = metricsCollector
	}

	// Инициализируем репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(db)
	unitRepository := unitRepo.NewRepository(db)
	auditRepository := auditRepo.NewRepository(db)
	overrideRepository := overrideRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db, txMetrics, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		auditRepository,
		txMgr,
		notifier,
		svcMetrics,
		log,
	)
	unitSvc := unitsService.NewService(unitRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		unitRepository,
		auditRepository,
		txMgr,
		notifier,
		ucMetrics,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		unitRepository,
		overrideRepository,
		defaultWindow,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBookingAudit := getBookingAuditHandler.NewHandler(bookingSvc, log)
	listUnits := listUnitsHandler.NewHandler(unitSvc, log)
	getUnit := getUnitHandler.NewHandler(unitSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог ---
	api.HandleFunc("/units", listUnits.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}", getUnit.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/audit", getBookingAudit.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
