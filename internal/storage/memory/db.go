package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/madewira/tripdesk/internal/logger"
	"github.com/madewira/tripdesk/internal/reservation"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id                       string
	reservationModifications map[string]*reservation.Reservation
	eventModifications       map[string]*reservation.Event
	rollbackActions          []func()
}

type DB struct {
	mu              sync.Mutex
	l               *logger.Logger
	reservations    map[string]*reservation.Reservation
	events          map[string]*reservation.Event
	transactions    map[string]*transaction
	nextTrxID       int64
	idempotencyKeys map[string]*reservation.Reservation
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:               conf.L,
		reservations:    make(map[string]*reservation.Reservation),
		events:          make(map[string]*reservation.Event),
		transactions:    make(map[string]*transaction),
		idempotencyKeys: make(map[string]*reservation.Reservation),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:                       trxID,
		reservationModifications: make(map[string]*reservation.Reservation),
		eventModifications:       make(map[string]*reservation.Event),
		rollbackActions:          []func(){},
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	idempotencyKey, ok := reservation.IdempotencyKeyFromContext(ctx)
	if !ok || idempotencyKey == "" {
		return reservation.ErrIdempotencyKey
	}

	for _, res := range trx.reservationModifications {
		db.reservations[res.ID] = res
		db.idempotencyKeys[idempotencyKey] = res
	}

	for _, event := range trx.eventModifications {
		db.events[event.ID] = event
	}

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for _, action := range trx.rollbackActions {
		action()
	}

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) SaveReservation(ctx context.Context, res *reservation.Reservation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	if _, ok = trx.reservationModifications[res.ID]; ok {
		return nil
	}

	trx.reservationModifications[res.ID] = res
	trx.rollbackActions = append(trx.rollbackActions, func() {
		delete(db.reservations, res.ID)
	})

	return nil
}

func (db *DB) SaveEvent(ctx context.Context, event *reservation.Event) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	if _, ok = trx.eventModifications[event.ID]; ok {
		return nil
	}

	trx.eventModifications[event.ID] = event
	trx.rollbackActions = append(trx.rollbackActions, func() {
		delete(db.events, event.ID)
	})

	return nil
}

func (db *DB) GetReservation(_ context.Context, id string) (*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, exists := db.reservations[id]
	if !exists {
		return nil, reservation.ErrRecordNotFound
	}

	return res, nil
}

func (db *DB) GetReservationByIdempotencyKey(ctx context.Context) (*reservation.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key, ok := reservation.IdempotencyKeyFromContext(ctx)
	if !ok || key == "" {
		return nil, reservation.ErrIdempotencyKey
	}

	res, exists := db.idempotencyKeys[key]
	if exists {
		return res, nil
	}

	return nil, reservation.ErrRecordNotFound
}
