package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/madewira/tripdesk/internal/logger"
	"github.com/madewira/tripdesk/internal/reservation"
)

type storage interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveReservation(ctx context.Context, res *reservation.Reservation) error
	SaveEvent(ctx context.Context, event *reservation.Event) error
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Up seeds one confirmed demo reservation so a fresh instance has something
// to show. Gated behind SEED_DEMO_DATA.
func Up(ctx context.Context, l *logger.Logger, storage storage) (err error) {
	res := &reservation.Reservation{
		ID: "demo-reservation",
		Customer: reservation.CustomerInfo{
			Name:  "Putu Wira",
			Phone: "+62 812 3456 789",
			Notes: "Repeat guest, prefers morning pickups",
		},
		Items: []reservation.Item{
			reservation.AccommodationItem{
				ItemCore: reservation.ItemCore{
					ItemID:     "demo-accommodation",
					ItemType:   reservation.TypeAccommodation,
					ItemStatus: reservation.StatusConfirmed,
				},
				HotelName: "Reddison Ubud",
				CheckIn:   "2026-09-10",
				CheckOut:  "2026-09-12",
				Rooms:     1,
				Guests:    2,
			},
			reservation.OpenTripsItem{
				ItemCore: reservation.ItemCore{
					ItemID:     "demo-open-trip",
					ItemType:   reservation.TypeOpenTrips,
					ItemStatus: reservation.StatusConfirmed,
				},
				Destination: "Nusa Penida West Coast",
				Date:        "2026-09-11",
				Pax:         2,
				Duration:    "1 Day",
			},
		},
		CreatedAt: date(2026, 8, 30),
		UpdatedAt: date(2026, 8, 30),
	}

	event := &reservation.Event{
		ID:            "demo-event",
		ReservationID: res.ID,
		CreatedAt:     date(2026, 8, 30),
	}

	ctx, err = storage.BeginTransaction(ctx, "")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	ctx = reservation.NewContextWithIdempotencyKey(ctx, "migration")

	defer func() {
		if p := recover(); p != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after panic %v", p)
			}

			l.LogInfo("Migration transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after error %v", err.Error())
			}

			l.LogInfo("Migration transaction has been roll backed after error")

			return
		}

		if err = storage.CommitTransaction(ctx); err != nil {
			l.LogErrorf("Could not commit migration transaction, err %v", err.Error())
		}

		l.LogInfo("Migration transaction has been committed")
	}()

	if err = storage.SaveReservation(ctx, res); err != nil {
		return fmt.Errorf("save reservation to storage: %w", err)
	}

	if err = storage.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("save event to storage: %w", err)
	}

	return nil
}
