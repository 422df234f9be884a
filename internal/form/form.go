// Package form turns a selected reservation category into an editable field
// session and, on submit, into exactly one item variant. There is a single
// data-driven Session; the per-type behavior lives in eight schema
// declarations, including the derived-field rules that fire when a primary
// field changes.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/madewira/tripdesk/internal/reservation"
)

var ErrUnknownType = errors.New("unknown reservation item type")

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type Dispatcher struct {
	idGenerator idGenerator
}

func NewDispatcher(idGenerator idGenerator) *Dispatcher {
	return &Dispatcher{idGenerator: idGenerator}
}

// Select returns the session for the given discriminant, seeded from existing
// when editing or from the type's defaults otherwise. An unknown discriminant
// yields ErrUnknownType; the caller renders the type picker in that case.
func (d *Dispatcher) Select(t reservation.ItemType, existing reservation.Item) (*Session, error) {
	schema, ok := schemas[t]
	if !ok {
		return nil, fmt.Errorf("select form for %q: %w", t, ErrUnknownType)
	}

	if existing != nil && existing.Type() != t {
		return nil, fmt.Errorf("existing item is %q, not %q: %w", existing.Type(), t, ErrUnknownType)
	}

	session := &Session{
		dispatcher: d,
		schema:     schema,
		existing:   existing,
		text:       make(map[string]string),
		nums:       make(map[string]int),
	}

	session.seed()

	return session, nil
}
