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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	red "github.com/redis/go-redis/v9"

	assignEmployeeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/assign_employee"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getCapabilitiesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_capabilities"
	getEmployeeCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_employee_calendar"
	moveBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/move_booking"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events/kafka"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events/logsink"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/idempotency"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	staffServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	assignEmployeeUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/assign_employee"
	dragRescheduleUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/drag_reschedule"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	updateBookingStatusUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// eventSink получатель доменных событий (Kafka или лог)
type eventSink interface {
	Publish(ctx context.Context, event domain.Event) error
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil-коллектор допустим: все методы метрик безопасны на nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Инициализируем репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Справочник сотрудников
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Публикация доменных событий
	var events eventSink
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.Settings{
			Brokers:     cfg.Kafka.Brokers,
			ClientID:    cfg.Kafka.ClientID,
			TopicPrefix: cfg.Kafka.TopicPrefix,
		}, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to create Kafka producer: %v", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("Failed to close Kafka producer: %v", err)
			}
		}()
		events = producer
	} else {
		events = logsink.New(log)
		log.Warn("Kafka disabled, domain events are written to the log")
	}

	// Ключи идемпотентности (если Redis включен)
	idempotent := func(h http.Handler) http.Handler { return h }
	if cfg.Redis.Enabled {
		redisClient := red.NewClient(&red.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, idempotency keys will fail open: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		store := idempotency.NewStore(
			redisClient,
			cfg.Redis.KeyPrefix,
			time.Duration(cfg.Redis.PendingTTL)*time.Second,
			time.Duration(cfg.Redis.TTL)*time.Second,
		)
		idempotent = middleware.Idempotency(store, log)
		log.Info("Idempotency keys enabled (redis=%s)", cfg.Redis.Addr)
	}

	policy := cfg.DomainPolicy()
	log.Info("Scheduling policy: rescheduling=%t, assignment=%t, max_advance_days=%d",
		policy.ReschedulingEnabled, policy.AssignmentEnabled, policy.MaxAdvanceBookingDays)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffClient,
		metricsCollector,
		nil,
		log,
	)

	updateStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		staffClient,
		events,
		metricsCollector,
		nil,
		log,
	)

	assignEmployeeUseCase := assignEmployeeUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffClient,
		txMgr,
		events,
		metricsCollector,
		nil,
		log,
	)

	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		staffClient,
		txMgr,
		events,
		metricsCollector,
		nil,
		log,
	)

	dragEngine := dragRescheduleUC.NewEngine(
		bookingRepository,
		catalogRepository,
		rescheduleUseCase,
		log,
	)

	// Инициализируем handlers
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getEmployeeCalendar := getEmployeeCalendarHandler.NewHandler(bookingSvc, log)
	getCapabilities := getCapabilitiesHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, policy, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateStatusUseCase, log)
	assignEmployee := assignEmployeeHandler.NewHandler(assignEmployeeUseCase, policy, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, policy, log)
	moveBooking := moveBookingHandler.NewHandler(dragEngine, policy, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-Employee-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Чтение ---
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}/calendar", getEmployeeCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/me/capabilities", getCapabilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Изменения бронирований (поддерживают Idempotency-Key) ---
	api.Handle("/bookings/{bookingId}/status",
		idempotent(http.HandlerFunc(updateBookingStatus.Handle))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/assignment",
		idempotent(http.HandlerFunc(assignEmployee.Handle))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/schedule",
		idempotent(http.HandlerFunc(rescheduleBooking.Handle))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/move",
		idempotent(http.HandlerFunc(moveBooking.Handle))).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
