package random

import (
	"context"

	"github.com/google/uuid"
)

// Generator mints opaque ids for items and reservations. No server round
// trip: ids must be available while the intake is still transient.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
