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
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogSessionsHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/catalog_sessions"
	createBookingHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/get_booking"
	grantCreditsHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/grant_credits"
	joinSessionHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/join_session"
	listBookingsHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/list_bookings"
	liveChannelHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/live_channel"
	setAvailabilityHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/set_availability"
	transitionBookingHandler "github.com/m04kA/SMC-MentoringService/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	"github.com/m04kA/SMC-MentoringService/internal/config"
	"github.com/m04kA/SMC-MentoringService/internal/infra/events"
	"github.com/m04kA/SMC-MentoringService/internal/infra/rtc"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
	"github.com/m04kA/SMC-MentoringService/internal/live"
	availabilityService "github.com/m04kA/SMC-MentoringService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MentoringService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-MentoringService/internal/service/catalog"
	creditsService "github.com/m04kA/SMC-MentoringService/internal/service/credits"
	createBookingUC "github.com/m04kA/SMC-MentoringService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MentoringService/internal/usecase/get_available_slots"
	joinSessionUC "github.com/m04kA/SMC-MentoringService/internal/usecase/join_session"
	transitionBookingUC "github.com/m04kA/SMC-MentoringService/internal/usecase/transition_booking"
	_ "github.com/m04kA/SMC-MentoringService/migrations"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
	"github.com/m04kA/SMC-MentoringService/pkg/metrics"
)

const configPath = "config.toml"

func main() {
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

	// Подкоманда migrate: применяем миграции и выходим
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatal("Migrations failed: %v", err)
		}
		return
	}

	log.Info("Starting SMC-MentoringService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем хранилище (PostgreSQL или in-memory)
	store, closeStore, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	// Инициализируем интеграционных клиентов
	mentorClient := mentorprofile.NewClient(
		cfg.MentorProfile.URL,
		time.Duration(cfg.MentorProfile.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MentorProfile=%s timeout=%ds)",
		cfg.MentorProfile.URL, cfg.MentorProfile.Timeout)

	// Публикация доменных событий
	var publisher interface {
		createBookingUC.EventPublisher
		Close()
	} = events.NopPublisher{}
	if cfg.Events.Enabled {
		natsPublisher, err := events.NewNatsPublisher(cfg.Events.NatsURL, cfg.Events.Prefix, cfg.Metrics.ServiceName, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		publisher = natsPublisher
		log.Info("Domain events published to %s with prefix %s", cfg.Events.NatsURL, cfg.Events.Prefix)
	}
	defer publisher.Close()

	tokenIssuer := rtc.NewIssuer(cfg.RTC.URL, cfg.RTC.APIKey, cfg.RTC.APISecret)

	// Live-канал встреч
	hub := live.NewHub(live.Config{
		QueueSize:        cfg.Live.QueueSize,
		DeliveryAttempts: cfg.Live.DeliveryAttempts,
		RetryDelay:       time.Duration(cfg.Live.RetryDelayMs) * time.Millisecond,
		TranscriptLimit:  cfg.Live.TranscriptLimit,
		MessageMaxLength: cfg.Live.MessageMaxLength,
		RatePerSecond:    cfg.Live.RatePerSecond,
		RateBurst:        cfg.Live.RateBurst,
	}, metricsCollector, log)
	defer hub.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runSweeper(sweepCtx, hub, time.Duration(cfg.Live.SweepInterval)*time.Second, log)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(store.availability, log)
	bookingSvc := bookingsService.NewService(store.bookings, log)
	catalogSvc := catalogService.NewService(store.catalog, mentorClient, log)
	creditSvc := creditsService.NewService(store.credits, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		store.credits,
		availabilitySvc,
		mentorClient,
		publisher,
		metricsCollector,
		store.txManager,
		location,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		store.bookings,
		store.credits,
		publisher,
		hub,
		metricsCollector,
		store.txManager,
		log,
	)
	joinSessionUseCase := joinSessionUC.NewUseCase(
		store.bookings,
		tokenIssuer,
		publisher,
		store.txManager,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		availabilitySvc,
		mentorClient,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, transitionBookingUC.ActionConfirm, log)
	rejectBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, transitionBookingUC.ActionReject, log)
	cancelBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, transitionBookingUC.ActionCancel, log)
	completeBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, transitionBookingUC.ActionComplete, log)
	joinSession := joinSessionHandler.NewHandler(joinSessionUseCase, log)
	liveChannel := liveChannelHandler.NewHandler(hub, tokenIssuer, store.bookings, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	catalogSessions := catalogSessionsHandler.NewHandler(catalogSvc, log)
	grantCredits := grantCreditsHandler.NewHandler(creditSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренние маршруты (доступны только из сети сервисов)
	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/mentees/{menteeId}/credits", grantCredits.Grant).Methods(http.MethodPost)
	internal.HandleFunc("/mentees/{menteeId}/credits", grantCredits.Balance).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Недельное расписание и доступные слоты ментора
	api.HandleFunc("/mentors/{mentorId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог сессий
	api.HandleFunc("/catalog-sessions", catalogSessions.List).Methods(http.MethodGet)
	api.HandleFunc("/catalog-sessions/{sessionId}", catalogSessions.Get).Methods(http.MethodGet)

	// Live-канал: аутентификация по токену допуска в query
	api.HandleFunc("/bookings/{bookingId}/live", liveChannel.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ментора ---
	protected.HandleFunc("/mentors/{mentorId}/availability", setAvailability.Handle).Methods(http.MethodPut)

	// --- Каталог ---
	protected.HandleFunc("/catalog-sessions", catalogSessions.Create).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// --- Встреча ---
	protected.HandleFunc("/bookings/{bookingId}/join", joinSession.Handle).Methods(http.MethodPost)

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// runMigrations применяет миграции goose к PostgreSQL
func runMigrations(cfg *config.Config, log *logger.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		log.Info("Database driver is %s, nothing to migrate", cfg.Database.Driver)
		return nil
	}

	db, err := sql.Open(cfg.Database.SQLDriver, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Migrations applied (host=%s, db=%s)", cfg.Database.Host, cfg.Database.DBName)
	return nil
}

// runSweeper периодически закрывает live-сессии, у которых закончилось окно встречи
func runSweeper(ctx context.Context, hub *live.Hub, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if closed := hub.Sweep(now); closed > 0 {
				log.Info("Live: swept %d expired sessions", closed)
			}
		}
	}
}
