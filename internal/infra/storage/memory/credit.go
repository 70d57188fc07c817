package memory

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	creditRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/credit"
)

// CreditRepository баланс кредитов и журнал в памяти
type CreditRepository struct {
	db *DB
}

// NewCreditRepository создает репозиторий кредитов поверх db
func NewCreditRepository(db *DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// Reserve списывает один кредит под бронирование
func (r *CreditRepository) Reserve(ctx context.Context, menteeID, bookingID int64) error {
	j, release := r.db.enter(ctx)
	defer release()

	if r.db.credits[menteeID] <= 0 {
		return creditRepo.ErrInsufficientCredit
	}
	r.db.adjust(j, menteeID, -1)
	r.db.appendEntry(j, menteeID, &bookingID, -1, domain.CreditReserve)
	return nil
}

// Refund возвращает кредит, списанный под бронирование
func (r *CreditRepository) Refund(ctx context.Context, menteeID, bookingID int64) error {
	j, release := r.db.enter(ctx)
	defer release()

	if _, ok := r.db.credits[menteeID]; !ok {
		return creditRepo.ErrAccountNotFound
	}
	r.db.adjust(j, menteeID, 1)
	r.db.appendEntry(j, menteeID, &bookingID, 1, domain.CreditRefund)
	return nil
}

// Grant начисляет кредиты менти и возвращает новый баланс
func (r *CreditRepository) Grant(ctx context.Context, menteeID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, creditRepo.ErrInvalidAmount
	}

	j, release := r.db.enter(ctx)
	defer release()

	r.db.adjust(j, menteeID, amount)
	r.db.appendEntry(j, menteeID, nil, amount, domain.CreditGrant)
	return r.db.credits[menteeID], nil
}

// Balance возвращает остаток кредитов менти
func (r *CreditRepository) Balance(ctx context.Context, menteeID int64) (int, error) {
	_, release := r.db.enter(ctx)
	defer release()

	return r.db.credits[menteeID], nil
}

// EntriesByBooking возвращает записи журнала по бронированию в порядке создания
func (r *CreditRepository) EntriesByBooking(ctx context.Context, bookingID int64) ([]*domain.CreditEntry, error) {
	_, release := r.db.enter(ctx)
	defer release()

	entries := make([]*domain.CreditEntry, 0)
	for _, e := range r.db.ledger {
		if e.BookingID != nil && *e.BookingID == bookingID {
			out := *e
			entries = append(entries, &out)
		}
	}
	return entries, nil
}

func (db *DB) adjust(j *journal, menteeID int64, delta int) {
	previous, existed := db.credits[menteeID]
	db.credits[menteeID] = previous + delta
	record(j, func() {
		if existed {
			db.credits[menteeID] = previous
		} else {
			delete(db.credits, menteeID)
		}
	})
}

func (db *DB) appendEntry(j *journal, menteeID int64, bookingID *int64, delta int, reason domain.CreditReason) {
	db.nextEntryID++
	db.ledger = append(db.ledger, &domain.CreditEntry{
		ID:        db.nextEntryID,
		MenteeID:  menteeID,
		BookingID: bookingID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: db.now(),
	})
	n := len(db.ledger) - 1
	record(j, func() { db.ledger = db.ledger[:n] })
}
