package reservation

import "time"

// CustomerInfo is mutable at any time before the reservation is committed.
// Name and phone are only required to confirm, not to keep a draft.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Reservation is minted at save time only; the working state lives as a
// transient intake until then.
type Reservation struct {
	ID        string       `json:"id"`
	Customer  CustomerInfo `json:"customer"`
	Items     []Item       `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Event struct {
	ID            string
	ReservationID string
	CreatedAt     time.Time
}

type SaveMode string

const (
	SaveDraft   SaveMode = "draft"
	SaveConfirm SaveMode = "confirm"
)
