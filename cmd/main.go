package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	getCalendarHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_calendar"
	getItemConfigHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_item_config"
	getItemReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_item_reservations"
	getQuoteHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_quote"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	updateItemConfigHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_item_config"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	itemRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/item"
	itemConfigRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/itemconfig"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	shopServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-RentalService/internal/scheduler"
	itemConfigService "github.com/m04kA/SMC-RentalService/internal/service/itemconfig"
	"github.com/m04kA/SMC-RentalService/internal/service/provider"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	getCalendarUC "github.com/m04kA/SMC-RentalService/internal/usecase/get_calendar"
	getQuoteUC "github.com/m04kA/SMC-RentalService/internal/usecase/get_quote"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// DataProvider источник товаров, резерваций и остатков (БД или сервис магазина)
type DataProvider interface {
	snapshot.DataProvider
	Name() string
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from %s (provider=%s, timezone=%s)", *configPath, cfg.Provider.Mode, cfg.Shop.Timezone)

	// Правила магазина (проверены в config.Validate)
	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Invalid shop timezone: %v", err)
	}
	closedWeekdays, err := cfg.Shop.Weekdays()
	if err != nil {
		log.Fatal("Invalid closed weekdays: %v", err)
	}
	rentalDefaults := cfg.Shop.RentalDefaults()

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

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		executor  dbmetrics.DBExecutor
		txManager *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txManager = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txManager = txmanager.NewSQLTransactionManager(db)
	}

	itemRepository := itemRepo.NewRepository(executor)
	reservationRepository := reservationRepo.NewRepository(executor)
	configRepository := itemConfigRepo.NewRepository(executor)

	// Источник данных для проверки доступности
	databaseProvider := provider.NewDatabaseProvider(itemRepository, reservationRepository, metricsCollector, log)

	var dataProvider DataProvider = databaseProvider
	if cfg.Provider.Mode == config.ProviderShop {
		shopClient := shopServiceClient.NewClient(
			cfg.ShopService.URL,
			cfg.ShopService.APIKey,
			time.Duration(cfg.ShopService.Timeout)*time.Second,
			log,
		)
		dataProvider = provider.NewShopProvider(shopClient, metricsCollector, log)
		log.Info("Shop service client initialized (url=%s, timeout=%ds)", cfg.ShopService.URL, cfg.ShopService.Timeout)
	}
	log.Info("Availability data provider: %s", dataProvider.Name())

	settings := snapshot.Settings{
		Location:       location,
		ClosedWeekdays: closedWeekdays,
		Defaults:       rentalDefaults,
	}
	snapshotLoader := snapshot.NewLoader(dataProvider, configRepository, settings, log)
	resolver := availability.NewResolver()

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, cfg.Auth, log)
	configSvc := itemConfigService.NewService(configRepository, dataProvider, cfg.Auth, txManager, rentalDefaults, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(snapshotLoader, resolver, metricsCollector, log)
	getQuoteUseCase := getQuoteUC.NewUseCase(snapshotLoader, resolver, metricsCollector, cfg.Shop.Currency, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(snapshotLoader, resolver, log)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getItemReservations := getItemReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getItemConfig := getItemConfigHandler.NewHandler(configSvc, log)
	updateItemConfig := updateItemConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	public := api.PathPrefix("").Subrouter()

	// Rate limit на публичные маршруты (Redis, фиксированное окно)
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute,
			cfg.RateLimit.Prefix, cfg.RateLimit.FailOpen, log)
		if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %d req/min (redis=%s)", cfg.RateLimit.RequestsPerMinute, cfg.Redis.Addr)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности диапазона
	public.HandleFunc("/items/{itemId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Расчет стоимости аренды
	public.HandleFunc("/items/{itemId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// Календарь занятости товара
	public.HandleFunc("/items/{itemId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Действующая конфигурация аренды товара
	public.HandleFunc("/items/{itemId}/config", getItemConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	// Создание резервации: только когда резервации хранятся в нашей БД.
	// В режиме shop резервации создает сервис магазина.
	if cfg.Provider.Mode == config.ProviderDatabase {
		createReservationLoader := snapshot.NewLoader(databaseProvider, configRepository, settings, log)
		createReservationUseCase := createReservationUC.NewUseCase(
			createReservationLoader,
			resolver,
			reservationRepository,
			txManager,
			metricsCollector,
			cfg.Shop.Currency,
			log,
		)
		createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
		protected.HandleFunc("/items/{itemId}/reservations", createReservation.Handle).Methods(http.MethodPost)
	}

	// Список резерваций товара (для сотрудников)
	protected.HandleFunc("/items/{itemId}/reservations", getItemReservations.Handle).Methods(http.MethodGet)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена резервации
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление конфигурацией (для сотрудников) ---
	protected.HandleFunc("/items/{itemId}/config", updateItemConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/config", updateItemConfig.Handle).Methods(http.MethodPut)

	// Планировщик: завершение закончившихся резерваций
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = scheduler.NewScheduler(reservationRepository, location, cfg.Scheduler.CompleteReservations, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		jobs.Start()
	}

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

	if jobs != nil {
		jobs.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
