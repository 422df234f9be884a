// Package intake owns the working state of a reservation being captured:
// customer details plus the ordered item list. The state is transient; a
// Reservation only exists once Save commits it to storage, as a draft or
// confirmed in full.
package intake

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/madewira/tripdesk/internal/form"
	"github.com/madewira/tripdesk/internal/logger"
	"github.com/madewira/tripdesk/internal/reservation"
)

var (
	ErrIntakeNotFound = errors.New("intake not found")
	ErrItemNotFound   = errors.New("item not found in intake")
)

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type storageReader interface {
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	GetReservationByIdempotencyKey(ctx context.Context) (*reservation.Reservation, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveReservation(ctx context.Context, res *reservation.Reservation) error
	SaveEvent(ctx context.Context, event *reservation.Event) error
}

type storage interface {
	storageReader
	storageWriter
}

// Intake is one in-progress capture. Items keep insertion order; that order
// is what the list renders.
type Intake struct {
	ID       string                   `json:"id"`
	Customer reservation.CustomerInfo `json:"customer"`
	Items    []reservation.Item       `json:"items"`
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	dispatcher  *form.Dispatcher

	mu      sync.Mutex
	intakes map[string]*Intake
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator) *Manager {
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		dispatcher:  form.NewDispatcher(idGenerator),
		intakes:     make(map[string]*Intake),
	}
}

func (m *Manager) Dispatcher() *form.Dispatcher {
	return m.dispatcher
}

func (m *Manager) CreateIntake(ctx context.Context) (Intake, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return Intake{}, reservation.ErrNextID
	}

	intake := &Intake{ID: id}

	m.mu.Lock()
	m.intakes[id] = intake
	m.mu.Unlock()

	return snapshot(intake), nil
}

func (m *Manager) Intake(id string) (Intake, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	intake, ok := m.intakes[id]
	if !ok {
		return Intake{}, ErrIntakeNotFound
	}

	return snapshot(intake), nil
}

func (m *Manager) Reservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	res, err := m.storage.GetReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation from storage: %w", err)
	}

	return res, nil
}

// SetCustomer replaces the customer block. Allowed at any time before the
// reservation is committed; confirm-readiness is checked at save, not here.
func (m *Manager) SetCustomer(id string, customer reservation.CustomerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	intake, ok := m.intakes[id]
	if !ok {
		return ErrIntakeNotFound
	}

	intake.Customer = customer

	return nil
}

// SubmitInput carries one form submission: the discriminant, the raw field
// values, and the target item id when editing.
type SubmitInput struct {
	Type   reservation.ItemType `json:"type"`
	ItemID string               `json:"item_id,omitempty"`
	Values map[string]string    `json:"values"`
}

// UpsertItem routes the submission through the form dispatcher. Creating
// appends a fresh draft item; editing replaces the whole item in place while
// its id and status carry over. Values apply in schema order so the derived-
// field rules fire the same way they would during interactive editing, with
// later explicit values still winning.
func (m *Manager) UpsertItem(ctx context.Context, intakeID string, input SubmitInput) (reservation.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	intake, ok := m.intakes[intakeID]
	if !ok {
		return nil, ErrIntakeNotFound
	}

	var existing reservation.Item

	position := -1

	if input.ItemID != "" {
		for idx, item := range intake.Items {
			if item.ID() == input.ItemID {
				existing = item
				position = idx

				break
			}
		}

		if existing == nil {
			return nil, ErrItemNotFound
		}
	}

	session, err := m.dispatcher.Select(input.Type, existing)
	if err != nil {
		return nil, fmt.Errorf("select form: %w", err)
	}

	for _, field := range session.Fields() {
		if value, ok := input.Values[field.Name]; ok {
			session.Set(field.Name, value)
		}
	}

	item, err := session.Submit(ctx)
	if err != nil {
		return nil, err
	}

	if position >= 0 {
		intake.Items[position] = item
	} else {
		intake.Items = append(intake.Items, item)
	}

	return item, nil
}

func (m *Manager) RemoveItem(intakeID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	intake, ok := m.intakes[intakeID]
	if !ok {
		return ErrIntakeNotFound
	}

	for idx, item := range intake.Items {
		if item.ID() == itemID {
			intake.Items = slices.Delete(intake.Items, idx, idx+1)

			return nil
		}
	}

	return ErrItemNotFound
}

// Save commits the intake as a reservation. Draft mode is never gated;
// confirm mode requires at least one item plus customer name and phone, and
// flips every item to confirmed without touching the intake's own items.
// The reservation id and timestamps are assigned here and nowhere earlier.
func (m *Manager) Save(ctx context.Context, intakeID string, mode reservation.SaveMode) (_ *reservation.Reservation, err error) {
	intake, err := m.Intake(intakeID)
	if err != nil {
		return nil, err
	}

	if err := validateSave(mode, intake); err != nil {
		return nil, err
	}

	existing, err := m.storage.GetReservationByIdempotencyKey(ctx)
	if err != nil && !errors.Is(err, reservation.ErrRecordNotFound) {
		return nil, fmt.Errorf("get reservation by idempotency key: %w", err)
	}

	if !errors.Is(err, reservation.ErrRecordNotFound) {
		return existing, nil
	}

	res, event, err := m.buildReservation(ctx, mode, intake)
	if err != nil {
		return nil, fmt.Errorf("build reservation: %w", err)
	}

	ctx, err = m.storage.BeginTransaction(ctx, "READ COMMITTED")
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if err = m.storage.RollbackTransaction(ctx); err != nil {
				m.l.LogErrorf("Could not rollback save transaction after panic %v", p)
			}

			m.l.LogInfo("Transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if err = m.storage.RollbackTransaction(ctx); err != nil {
				m.l.LogErrorf("Could not rollback save transaction after error %v", err.Error())
			}

			m.l.LogInfo("Transaction has been roll backed after error")

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			m.l.LogErrorf("Could not commit save transaction, err %v", err.Error())
		}

		m.l.LogInfo("Transaction has been committed")
	}()

	if err = m.storage.SaveReservation(ctx, res); err != nil {
		return nil, fmt.Errorf("save reservation to storage: %w", err)
	}

	if err = m.storage.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("save event to storage: %w", err)
	}

	return res, nil
}

func validateSave(mode reservation.SaveMode, intake Intake) error {
	if reservation.CanSave(mode, intake.Customer, intake.Items) {
		return nil
	}

	inputErr := reservation.NewInputError()

	if len(intake.Items) == 0 {
		inputErr.AddError("items", "provide at least one item")
	}

	if intake.Customer.Name == "" {
		inputErr.AddError("customer.name", "provide customer name")
	}

	if intake.Customer.Phone == "" {
		inputErr.AddError("customer.phone", "provide customer phone")
	}

	return inputErr
}

func (m *Manager) buildReservation(
	ctx context.Context,
	mode reservation.SaveMode,
	intake Intake,
) (*reservation.Reservation, *reservation.Event, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, nil, reservation.ErrNextID
	}

	items := intake.Items
	if mode == reservation.SaveConfirm {
		items = reservation.Confirm(items)
	}

	now := time.Now().UTC()

	res := &reservation.Reservation{
		ID:        id,
		Customer:  intake.Customer,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	eventID, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, nil, reservation.ErrNextID
	}

	event := &reservation.Event{
		ID:            eventID,
		ReservationID: res.ID,
		CreatedAt:     now,
	}

	return res, event, nil
}

func snapshot(intake *Intake) Intake {
	return Intake{
		ID:       intake.ID,
		Customer: intake.Customer,
		Items:    slices.Clone(intake.Items),
	}
}
