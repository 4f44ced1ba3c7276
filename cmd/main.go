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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/wellmio-booking/internal/api"
	createBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_booking"
	createTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_timeslot"
	deleteTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/delete_timeslot"
	getBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/get_booking"
	listBookingOptionsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_booking_options"
	listBookingsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_bookings"
	listTimeslotsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_timeslots"
	paymentWebhookHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/payment_webhook"
	updateTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/update_timeslot"
	upsertBookingOptionHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/upsert_booking_option"
	"github.com/m04kA/wellmio-booking/internal/config"
	slotsCache "github.com/m04kA/wellmio-booking/internal/infra/cache/slots"
	bookingRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/booking"
	optionRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/option"
	timeslotRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/timeslot"
	"github.com/m04kA/wellmio-booking/internal/integrations/events"
	"github.com/m04kA/wellmio-booking/internal/integrations/payments"
	bookingsService "github.com/m04kA/wellmio-booking/internal/service/bookings"
	optionsService "github.com/m04kA/wellmio-booking/internal/service/options"
	timeslotsService "github.com/m04kA/wellmio-booking/internal/service/timeslots"
	createBookingUC "github.com/m04kA/wellmio-booking/internal/usecase/create_booking"
	handlePaymentEventUC "github.com/m04kA/wellmio-booking/internal/usecase/handle_payment_event"
	"github.com/m04kA/wellmio-booking/pkg/dbmetrics"
	"github.com/m04kA/wellmio-booking/pkg/logger"
	"github.com/m04kA/wellmio-booking/pkg/metrics"
	"github.com/m04kA/wellmio-booking/pkg/txmanager"
)

func main() {
	// Секреты для локального запуска
	_ = godotenv.Load(".env")

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level,
		logger.WithRotation(cfg.Logs.MaxSizeMB, cfg.Logs.MaxBackups, cfg.Logs.MaxAgeDays))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting wellmio-booking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(prometheus.DefaultRegisterer)
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	// Репозитории и менеджер транзакций
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	optionRepository := optionRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш свободных слотов (Redis)
	var slotCache timeslotsService.SlotCache
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, listing will fall back to database: %v", cfg.Cache.Addr, err)
		}
		cancel()

		slotCache = slotsCache.NewCache(redisClient, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		log.Info("Slot cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Публикация событий бронирования (RabbitMQ)
	var publisher handlePaymentEventUC.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer amqpPublisher.Close()

		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}

	// Платежный провайдер
	paymentClient := payments.NewClient(
		cfg.Payments.BaseURL,
		cfg.Payments.SecretKey,
		time.Duration(cfg.Payments.TimeoutSeconds)*time.Second,
		log,
	)
	verifier := payments.NewVerifier(
		cfg.Payments.WebhookSecret,
		time.Duration(cfg.Payments.WebhookToleranceSeconds)*time.Second,
	)
	log.Info("Payment client initialized (base_url=%s, timeout=%ds)", cfg.Payments.BaseURL, cfg.Payments.TimeoutSeconds)

	// Инициализируем сервисы
	optionSvc := optionsService.NewService(optionRepository, txMgr, cfg.Location(), log)
	slotSvc := timeslotsService.NewService(timeslotRepository, slotCache, optionSvc, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	if err := optionSvc.EnsureDefaults(context.Background()); err != nil {
		log.Fatal("Failed to ensure default booking options: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotSvc,
		bookingRepository,
		optionSvc,
		paymentClient,
		txMgr,
		createBookingUC.CheckoutConfig{
			ProductName: cfg.Payments.ProductName,
			SuccessURL:  cfg.Payments.SuccessURL,
			CancelURL:   cfg.Payments.CancelURL,
		},
		metricsCollector,
		log,
	)

	paymentEventUseCase := handlePaymentEventUC.NewUseCase(
		verifier,
		bookingRepository,
		slotSvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Настраиваем роутер
	routerCfg := api.RouterConfig{
		JWTSecret:      cfg.Auth.JWTSecret,
		AdminRole:      cfg.Auth.AdminRole,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
		MetricsPath:    cfg.Metrics.Path,
		ServiceName:    cfg.Metrics.ServiceName,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metricsCollector
	}

	r := api.NewRouter(&api.Handlers{
		ListTimeslots:       listTimeslotsHandler.NewHandler(slotSvc, log),
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		PaymentWebhook:      paymentWebhookHandler.NewHandler(paymentEventUseCase, log),
		ListBookingOptions:  listBookingOptionsHandler.NewHandler(optionSvc, log),
		UpsertBookingOption: upsertBookingOptionHandler.NewHandler(optionSvc, log),
		CreateTimeslot:      createTimeslotHandler.NewHandler(slotSvc, log),
		UpdateTimeslot:      updateTimeslotHandler.NewHandler(slotSvc, log),
		DeleteTimeslot:      deleteTimeslotHandler.NewHandler(slotSvc, log),
		ListBookings:        listBookingsHandler.NewHandler(bookingSvc, log),
	}, routerCfg)

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
