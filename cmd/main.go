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
	"github.com/redis/go-redis/v9"

	"github.com/areninha/booking-service/internal/api/handlers"
	cancelBookingHandler "github.com/areninha/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/areninha/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/areninha/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/areninha/booking-service/internal/api/handlers/get_booking"
	getFieldHandler "github.com/areninha/booking-service/internal/api/handlers/get_field"
	getPlayerBookingsHandler "github.com/areninha/booking-service/internal/api/handlers/get_player_bookings"
	listFieldsHandler "github.com/areninha/booking-service/internal/api/handlers/list_fields"
	"github.com/areninha/booking-service/internal/api/middleware"
	"github.com/areninha/booking-service/internal/config"
	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/internal/infra/cache"
	"github.com/areninha/booking-service/internal/infra/events"
	bookingRepo "github.com/areninha/booking-service/internal/infra/storage/booking"
	fieldRepo "github.com/areninha/booking-service/internal/infra/storage/field"
	"github.com/areninha/booking-service/internal/infra/storage/memory"
	bookingsService "github.com/areninha/booking-service/internal/service/bookings"
	catalogService "github.com/areninha/booking-service/internal/service/catalog"
	createBookingUC "github.com/areninha/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/areninha/booking-service/internal/usecase/get_available_slots"
	"github.com/areninha/booking-service/pkg/dbmetrics"
	"github.com/areninha/booking-service/pkg/logger"
	"github.com/areninha/booking-service/pkg/metrics"
	"github.com/areninha/booking-service/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// fieldStore хранилище каталога (postgres или память)
type fieldStore interface {
	List(ctx context.Context) ([]*domain.Field, error)
	Search(ctx context.Context, filter domain.FieldFilter) ([]*domain.Field, error)
	GetByID(ctx context.Context, id string) (*domain.Field, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, field *domain.Field) error
}

// bookingStore журнал бронирований (postgres или память)
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByFieldAndDate(ctx context.Context, fieldID string, date time.Time) ([]*domain.Booking, error)
	GetByPlayer(ctx context.Context, filter domain.PlayerBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string, cancelledAt time.Time) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := os.Getenv("ARENA_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Метрики (при выключенных передается nil, методы безопасны)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var (
		fields   fieldStore
		bookings bookingStore
		txMgr    txManager
		db       *sql.DB
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		fields = memory.NewFieldStore()
		bookings = memory.NewBookingStore()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory storage, data will be lost on restart")

	default:
		db, err = sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db)
		}

		fields = fieldRepo.NewRepository(wrappedDB)
		bookings = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Кеш каталога (опционально)
	var (
		fieldCache  catalogService.FieldCache
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		fieldCache = cache.NewFieldCache(redisClient, cfg.Redis.TTLDuration())
		log.Info("Field cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий бронирований
	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		log.Fatal("Failed to initialize event publisher (driver=%s): %v", cfg.Events.Driver, err)
	}
	log.Info("Event publisher initialized (driver=%s)", cfg.Events.Driver)

	// Сервисы и use cases
	catalogSvc := catalogService.NewService(fields, fieldCache, txMgr, log)
	bookingSvc := bookingsService.NewService(bookings, publisher, metricsCollector, location, log)

	// Демо-каталог засевается до приема запросов, иначе слоты и бронирования
	// по ID демо-площадок недоступны до первого обращения к каталогу
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogSvc.Seed(seedCtx); err != nil {
		log.Warn("Catalog seeding at startup failed, will retry on first catalog request: %v", err)
	}
	cancelSeed()

	createBookingUseCase := createBookingUC.NewUseCase(
		fields,
		bookings,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(fields, bookings, log)

	// Handlers
	listFields := listFieldsHandler.NewHandler(catalogSvc, log)
	getField := getFieldHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPlayerBookings := getPlayerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/fields", listFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/players/me/bookings", getPlayerBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverRabbitMQ:
		publisher, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	case config.EventsDriverKafka:
		return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	default:
		return events.NopPublisher{}, nil
	}
}

// healthHandler GET /health, при postgres-хранилище проверяет соединение с БД
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
