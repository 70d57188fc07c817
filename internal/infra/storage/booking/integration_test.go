package booking_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/credit"
	_ "github.com/m04kA/SMC-MentoringService/migrations"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/txmanager"
)

type StorageIntegrationTestSuite struct {
	suite.Suite
	ctx      context.Context
	pgc      *postgres.PostgresContainer
	db       *sql.DB
	tx       *txmanager.TransactionManager
	bookings *booking.Repository
	catalog  *catalog.Repository
	credits  *credit.Repository
}

func TestStorageIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("DOCKER_HOST is not set, skipping PostgreSQL integration tests")
	}
	suite.Run(t, new(StorageIntegrationTestSuite))
}

func (s *StorageIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("mentoring"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("pgx", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(goose.SetDialect("postgres"))
	s.Require().NoError(goose.Up(db, "../../../../migrations"))

	wrapped := dbmetrics.Wrap(db, nil, "integration")
	s.tx = txmanager.NewTransactionManager(wrapped)
	s.bookings = booking.NewRepository(wrapped)
	s.catalog = catalog.NewRepository(wrapped)
	s.credits = credit.NewRepository(wrapped)
}

func (s *StorageIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.pgc != nil {
		s.Require().NoError(s.pgc.Terminate(s.ctx))
	}
}

func (s *StorageIntegrationTestSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE credit_ledger, mentee_credits, bookings, catalog_sessions RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *StorageIntegrationTestSuite) slotBooking(menteeID int64) *domain.Booking {
	slot, err := domain.ParseTimeSlot("10:00-11:00")
	s.Require().NoError(err)
	date := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		MentorID:    7,
		MenteeID:    menteeID,
		BookingDate: &date,
		Slot:        &slot,
		StartsAt:    date.Add(10 * time.Hour),
		EndsAt:      date.Add(11 * time.Hour),
		Status:      domain.StatusPending,
	}
}

func (s *StorageIntegrationTestSuite) TestConcurrentSlotBooking() {
	for i := int64(1); i <= 20; i++ {
		_, err := s.credits.Grant(s.ctx, i, 1)
		s.Require().NoError(err)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	candidates := make([]*domain.Booking, 20)
	for i := range candidates {
		candidates[i] = s.slotBooking(int64(i + 1))
	}

	for _, c := range candidates {
		wg.Add(1)
		go func(c *domain.Booking) {
			defer wg.Done()
			err := s.tx.Do(s.ctx, func(ctx context.Context) error {
				created, err := s.bookings.InsertIfNoConflict(ctx, c)
				if err != nil {
					return err
				}
				return s.credits.Reserve(ctx, c.MenteeID, created.ID)
			})
			if err == nil {
				succeeded.Add(1)
			} else if s.ErrorIs(err, domain.ErrConflict) {
				conflicts.Add(1)
			}
		}(c)
	}
	wg.Wait()

	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(19), conflicts.Load())

	list, err := s.bookings.ListActiveByMentorDate(s.ctx, 7, *candidates[0].BookingDate)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *StorageIntegrationTestSuite) TestStatusGuardAndRefund() {
	_, err := s.credits.Grant(s.ctx, 1, 1)
	s.Require().NoError(err)

	var id int64
	err = s.tx.Do(s.ctx, func(ctx context.Context) error {
		created, err := s.bookings.InsertIfNoConflict(ctx, s.slotBooking(1))
		if err != nil {
			return err
		}
		id = created.ID
		return s.credits.Reserve(ctx, 1, created.ID)
	})
	s.Require().NoError(err)

	balance, err := s.credits.Balance(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(0, balance)

	reason := "не могу в это время"
	err = s.tx.Do(s.ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.bookings.ApplyStatusChange(ctx, b.ID, domain.StatusPending, domain.StatusChange{
			Status:          domain.StatusRejected,
			RejectionReason: &reason,
		}); err != nil {
			return err
		}
		return s.credits.Refund(ctx, b.MenteeID, b.ID)
	})
	s.Require().NoError(err)

	_, err = s.bookings.ApplyStatusChange(s.ctx, id, domain.StatusPending, domain.StatusChange{Status: domain.StatusConfirmed})
	s.ErrorIs(err, domain.ErrAlreadyDecided)

	balance, err = s.credits.Balance(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(1, balance)

	entries, err := s.credits.EntriesByBooking(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(-1, entries[0].Delta)
	s.Equal(1, entries[1].Delta)
}

func (s *StorageIntegrationTestSuite) TestCatalogCapacity() {
	session, err := s.catalog.Create(s.ctx, &domain.CatalogSession{
		MentorID:        7,
		Title:           "System design mock interview",
		StartsAt:        time.Date(2030, 3, 5, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Capacity:        1,
	})
	s.Require().NoError(err)

	seat := func(menteeID int64) error {
		return s.tx.Do(s.ctx, func(ctx context.Context) error {
			_, err := s.bookings.InsertIfNoConflict(ctx, &domain.Booking{
				MentorID:         7,
				MenteeID:         menteeID,
				CatalogSessionID: &session.ID,
				StartsAt:         session.StartsAt,
				EndsAt:           session.EndsAt(),
				Status:           domain.StatusPending,
			})
			return err
		})
	}

	s.Require().NoError(seat(1))
	s.ErrorIs(seat(2), booking.ErrCapacityExhausted)

	got, err := s.catalog.GetByID(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(got.IsFull())
}
