package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/config"
	"github.com/m04kA/SMC-MentoringService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/catalog"
	creditRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/credit"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
	"github.com/m04kA/SMC-MentoringService/pkg/metrics"
	"github.com/m04kA/SMC-MentoringService/pkg/txmanager"
)

type bookingStore interface {
	InsertIfNoConflict(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ListActiveByMentorDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error)
	ApplyStatusChange(ctx context.Context, id int64, expected domain.BookingStatus, change domain.StatusChange) (*domain.Booking, error)
	MarkJoined(ctx context.Context, id int64, at time.Time) error
}

type catalogStore interface {
	Create(ctx context.Context, session *domain.CatalogSession) (*domain.CatalogSession, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogSession, error)
	ListUpcoming(ctx context.Context, now time.Time, mentorID *int64) ([]*domain.CatalogSession, error)
}

type creditStore interface {
	Reserve(ctx context.Context, menteeID, bookingID int64) error
	Refund(ctx context.Context, menteeID, bookingID int64) error
	Grant(ctx context.Context, menteeID int64, amount int) (int, error)
	Balance(ctx context.Context, menteeID int64) (int, error)
}

type availabilityStore interface {
	Get(ctx context.Context, mentorID int64) (*domain.MentorAvailability, error)
	Replace(ctx context.Context, availability *domain.MentorAvailability) (*domain.MentorAvailability, error)
}

type transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера и менеджер транзакций над ними
type storage struct {
	bookings     bookingStore
	catalog      catalogStore
	credits      creditStore
	availability availabilityStore
	txManager    transactor
}

// openStorage инициализирует хранилище по database.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		db := memory.NewDB()
		log.Warn("Using in-memory storage: data is lost on restart")
		return &storage{
			bookings:     memory.NewBookingRepository(db),
			catalog:      memory.NewCatalogRepository(db),
			credits:      memory.NewCreditRepository(db),
			availability: memory.NewAvailabilityRepository(db),
			txManager:    db,
		}, func() {}, nil
	}

	// Подключаемся к базе данных (lib/pq или pgx)
	db, err := sql.Open(cfg.Database.SQLDriver, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
		cfg.Database.SQLDriver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках обёртка просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	return &storage{
		bookings:     bookingRepo.NewRepository(wrappedDB),
		catalog:      catalogRepo.NewRepository(wrappedDB),
		credits:      creditRepo.NewRepository(wrappedDB),
		availability: availabilityRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
	}, func() { db.Close() }, nil
}
