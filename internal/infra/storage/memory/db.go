package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// DB хранилище в памяти процесса
// Все операции сериализуются одним мьютексом. Транзакция (Do) держит мьютекс
// до своего завершения и при ошибке откатывает изменения по журналу отмены.
type DB struct {
	mu sync.Mutex

	nextBookingID int64
	nextSessionID int64
	nextEntryID   int64

	bookings     map[int64]*domain.Booking
	sessions     map[int64]*domain.CatalogSession
	availability map[int64]*domain.MentorAvailability
	credits      map[int64]int
	ledger       []*domain.CreditEntry

	now func() time.Time
}

// NewDB создает пустое хранилище
func NewDB() *DB {
	return &DB{
		bookings:     make(map[int64]*domain.Booking),
		sessions:     make(map[int64]*domain.CatalogSession),
		availability: make(map[int64]*domain.MentorAvailability),
		credits:      make(map[int64]int),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{}

// journal список функций отмены изменений текущей транзакции
type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// Do выполняет fn атомарно относительно всех остальных операций хранилища
// Вложенный вызов выполняется в рамках внешней транзакции
func (db *DB) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*journal); ok {
		return fn(ctx)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// enter захватывает мьютекс, если вызов происходит вне транзакции
// Возвращает журнал транзакции (nil вне её) и функцию освобождения
func (db *DB) enter(ctx context.Context) (*journal, func()) {
	if j, ok := ctx.Value(txKey{}).(*journal); ok {
		return j, func() {}
	}
	db.mu.Lock()
	return nil, db.mu.Unlock
}

func record(j *journal, fn func()) {
	if j != nil {
		j.record(fn)
	}
}
