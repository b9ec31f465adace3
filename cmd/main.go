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

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	checkCompatibilityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_compatibility"
	checkInHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_in_booking"
	checkOutHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_out_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	deletePolicyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_cancellation_policy"
	extendBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/extend_booking"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getPolicyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_cancellation_policy"
	getQuoteHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_quote"
	getSpaceBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_space_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listHostPoliciesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_host_policies"
	reportIssueHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/report_issue"
	searchSpacesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/search_spaces"
	updateStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking_status"
	updatePolicyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_cancellation_policy"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	policyRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/profileservice"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	policyService "github.com/m04kA/SMC-ParkingService/internal/service/policy"
	checkCompatibilityUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_compatibility"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getQuoteUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_quote"
	searchSpacesUC "github.com/m04kA/SMC-ParkingService/internal/usecase/search_spaces"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// bookingStore хранилище бронирований для сервиса и создания
type bookingStore interface {
	bookingsService.BookingRepository
	createBookingUC.BookingRepository
}

// txManager менеджер транзакций общий для сервисов и use cases
type txManager interface {
	bookingsService.TransactionManager
	policyService.TransactionManager
	createBookingUC.TransactionManager
}

func main() {
	// Загружаем конфигурацию
	configPath := config.PathFromEnv()
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилища
	var (
		bookings bookingStore
		policies policyService.PolicyRepository
		txMgr    txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		bookings = memory.NewBookingRepository()
		policies = memory.NewPolicyRepository()
		txMgr = txmanager.NewNoop()
		log.Info("Using in-memory storage")
	default:
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
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			bookings = bookingRepo.NewRepository(wrappedDB)
			policies = policyRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			sqlDB := dbmetrics.NewSqlDB(db)

			bookings = bookingRepo.NewRepository(sqlDB)
			policies = policyRepo.NewRepository(sqlDB)
			txMgr = txmanager.NewTransactionManager(sqlDB)
		}
	}

	// Redis для кэша мест и потока событий
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = listingservice.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Address, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Address)
		}
		cancelPing()
	}

	// Инициализируем интеграционных клиентов
	var listingSource listingservice.Source
	switch cfg.ListingService.Source {
	case config.ListingSourceStatic:
		catalog, err := listingservice.NewStaticCatalog(cfg.Spaces)
		if err != nil {
			log.Fatal("Failed to build static space catalog: %v", err)
		}
		listingSource = catalog
		log.Info("Listing source: static catalog with %d spaces", len(cfg.Spaces))
	default:
		listingSource = listingservice.NewClient(
			cfg.ListingService.URL,
			time.Duration(cfg.ListingService.Timeout)*time.Second,
			log,
		)
		log.Info("Listing source: ListingService=%s timeout=%ds", cfg.ListingService.URL, cfg.ListingService.Timeout)
	}
	if rdb != nil {
		listingSource = listingservice.NewCachedClient(
			listingSource,
			rdb,
			time.Duration(cfg.ListingService.CacheTTL)*time.Second,
			log,
		)
		log.Info("Space cache enabled (ttl=%ds)", cfg.ListingService.CacheTTL)
	}

	profileClient := profileservice.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем публикацию событий
	messagePublisher, err := events.NewMessagePublisher(cfg.Events.Driver, rdb, log.Watermill())
	if err != nil {
		log.Fatal("Failed to create event publisher: %v", err)
	}
	defer messagePublisher.Close()

	eventBus, err := events.NewEventBus(messagePublisher, log.Watermill())
	if err != nil {
		log.Fatal("Failed to create event bus: %v", err)
	}
	publisher := events.NewPublisher(eventBus, log)
	log.Info("Booking events published via %s", cfg.Events.Driver)

	// Инициализируем сервисы
	locks := keylock.New()

	policySvc := policyService.NewService(
		policies,
		listingSource,
		txMgr,
		policyService.Defaults{
			FreeCancellationHours:      cfg.Booking.FreeCancellationHours,
			LateCancellationFeePercent: cfg.Booking.LateCancellationFeePercent,
		},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookings,
		listingSource,
		policySvc,
		publisher,
		txMgr,
		locks,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		listingSource,
		publisher,
		txMgr,
		locks,
		metricsCollector,
		log,
	)
	getQuoteUseCase := getQuoteUC.NewUseCase(listingSource, log)
	searchSpacesUseCase := searchSpacesUC.NewUseCase(listingSource, log)
	checkCompatibilityUseCase := checkCompatibilityUC.NewUseCase(listingSource, profileClient, log)

	// Инициализируем handlers
	handlers := api.Handlers{
		SearchSpaces:          searchSpacesHandler.NewHandler(searchSpacesUseCase, log).Handle,
		GetQuote:              getQuoteHandler.NewHandler(getQuoteUseCase, log).Handle,
		GetCancellationPolicy: getPolicyHandler.NewHandler(policySvc, log).Handle,

		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log).Handle,
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log).Handle,
		UpdateBookingStatus: updateStatusHandler.NewHandler(bookingSvc, log).Handle,
		CancelBooking:       cancelBookingHandler.NewHandler(bookingSvc, log).Handle,
		ExtendBooking:       extendBookingHandler.NewHandler(bookingSvc, log).Handle,
		ReportIssue:         reportIssueHandler.NewHandler(bookingSvc, log).Handle,
		CheckIn:             checkInHandler.NewHandler(bookingSvc, log).Handle,
		CheckOut:            checkOutHandler.NewHandler(bookingSvc, log).Handle,
		GetUserBookings:     getUserBookingsHandler.NewHandler(bookingSvc, log).Handle,
		GetSpaceBookings:    getSpaceBookingsHandler.NewHandler(bookingSvc, log).Handle,

		CheckCompatibility: checkCompatibilityHandler.NewHandler(checkCompatibilityUseCase, log).Handle,

		ListHostPolicies:         listHostPoliciesHandler.NewHandler(policySvc, log).Handle,
		UpdateCancellationPolicy: updatePolicyHandler.NewHandler(policySvc, log).Handle,
		DeleteCancellationPolicy: deletePolicyHandler.NewHandler(policySvc, log).Handle,
	}

	// Настраиваем роутер
	opts := api.Options{}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		log.Info("Rate limiting enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	r := api.NewRouter(handlers, opts)

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
