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

	cancelBookingHandler "github.com/linkhub/booking-service/internal/api/handlers/cancel_booking"
	cancelByOrderHandler "github.com/linkhub/booking-service/internal/api/handlers/cancel_by_order"
	confirmHoldHandler "github.com/linkhub/booking-service/internal/api/handlers/confirm_hold"
	createBlockHandler "github.com/linkhub/booking-service/internal/api/handlers/create_block"
	createHoldHandler "github.com/linkhub/booking-service/internal/api/handlers/create_hold"
	createServiceHandler "github.com/linkhub/booking-service/internal/api/handlers/create_service"
	createWindowHandler "github.com/linkhub/booking-service/internal/api/handlers/create_window"
	deleteWindowHandler "github.com/linkhub/booking-service/internal/api/handlers/delete_window"
	getAvailableSlotsHandler "github.com/linkhub/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/linkhub/booking-service/internal/api/handlers/get_booking"
	getServiceHandler "github.com/linkhub/booking-service/internal/api/handlers/get_service"
	listBookingsHandler "github.com/linkhub/booking-service/internal/api/handlers/list_bookings"
	listWindowsHandler "github.com/linkhub/booking-service/internal/api/handlers/list_windows"
	"github.com/linkhub/booking-service/internal/api/middleware"
	"github.com/linkhub/booking-service/internal/app"
	"github.com/linkhub/booking-service/internal/config"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
	"github.com/linkhub/booking-service/internal/integrations/payments"
	bookingsService "github.com/linkhub/booking-service/internal/service/bookings"
	scheduleService "github.com/linkhub/booking-service/internal/service/schedule"
	confirmHoldUC "github.com/linkhub/booking-service/internal/usecase/confirm_hold"
	createHoldUC "github.com/linkhub/booking-service/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/linkhub/booking-service/internal/usecase/get_available_slots"
	"github.com/linkhub/booking-service/pkg/dbmetrics"
	"github.com/linkhub/booking-service/pkg/logger"
	"github.com/linkhub/booking-service/pkg/metrics"
	"github.com/linkhub/booking-service/pkg/txmanager"
)

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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Применяем миграции (если включено)
	if cfg.Migrations.Auto {
		migrator, err := app.NewMigrator(db, cfg.Migrations.Dir, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем клиент платёжного провайдера (если включен)
	var paymentsClient confirmHoldUC.PaymentsClient
	if cfg.Payments.Enabled {
		paymentsClient = payments.NewClient(
			cfg.Payments.URL,
			time.Duration(cfg.Payments.Timeout)*time.Second,
			log,
		)
		log.Info("Payments client initialized (url=%s, timeout=%ds)", cfg.Payments.URL, cfg.Payments.Timeout)
	} else {
		log.Warn("Payments verification disabled, holds confirm without order check")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		txMgr              *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = txmanager.NewFromSQLDB(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		log,
	)

	confirmHoldUseCase := confirmHoldUC.NewUseCase(
		bookingRepository,
		paymentsClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, metricsCollector, log)
	confirmHold := confirmHoldHandler.NewHandler(confirmHoldUseCase, metricsCollector, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	cancelByOrder := cancelByOrderHandler.NewHandler(bookingSvc, log)
	createBlock := createBlockHandler.NewHandler(bookingSvc, log)
	createService := createServiceHandler.NewHandler(scheduleSvc, log)
	getService := getServiceHandler.NewHandler(scheduleSvc, log)
	createWindow := createWindowHandler.NewHandler(scheduleSvc, log)
	listWindows := listWindowsHandler.NewHandler(scheduleSvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(scheduleSvc, log)

	// Запускаем фоновый sweeper истёкших удержаний
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()

	sweeper := app.NewSweeper(
		bookingSvc,
		metricsCollector,
		time.Duration(cfg.Booking.SweepIntervalSeconds)*time.Second,
		log,
	)
	sweeper.Start(sweeperCtx)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Карточка услуги
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// Свободные слоты услуги
	api.HandleFunc("/services/{serviceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Удержание слота покупателем
	api.HandleFunc("/services/{serviceId}/hold", createHold.Handle).Methods(http.MethodPost)

	// Подтверждение удержания по токену
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmHold.Handle).Methods(http.MethodPost)

	// Каскадная отмена по заказу (вызывается подсистемой заказов)
	api.HandleFunc("/orders/{orderId}/cancel", cancelByOrder.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования владельца ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Блокировки интервалов ---
	protected.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)

	// --- Услуги ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

	// --- Окна доступности ---
	protected.HandleFunc("/windows", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/windows", listWindows.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи
	sweeper.Stop()
	sweeperCancel()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
