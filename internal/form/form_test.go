package form

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/madewira/tripdesk/internal/reservation"
)

type seqIDGen struct {
	next int
	fail bool
}

func (g *seqIDGen) GetID(_ context.Context) (string, error) {
	if g.fail {
		return "", errors.New("no ids today")
	}

	g.next++

	return fmt.Sprintf("id-%d", g.next), nil
}

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(&seqIDGen{})
}

func TestSelectUnknownType(t *testing.T) {
	_, err := newTestDispatcher().Select("cruise", nil)
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err=%v, want ErrUnknownType", err)
	}
}

func TestSelectTypeMismatch(t *testing.T) {
	existing := reservation.OpenTripsItem{
		ItemCore: reservation.ItemCore{ItemID: "i1", ItemType: reservation.TypeOpenTrips, ItemStatus: reservation.StatusDraft},
	}

	if _, err := newTestDispatcher().Select(reservation.TypeAccommodation, existing); err == nil {
		t.Fatalf("selecting accommodation form for an open-trips item must fail")
	}
}

func TestSubmitCreatesDraftWithFreshID(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeOpenTrips, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("destination", "Gili Trawangan")
	session.Set("date", "2026-09-14")
	session.Set("pax", "4")
	session.Set("duration", "2 days 1 night")

	item, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	trip, ok := item.(reservation.OpenTripsItem)
	if !ok {
		t.Fatalf("got %T, want OpenTripsItem", item)
	}

	if trip.ID() == "" {
		t.Fatalf("a created item must get an id")
	}

	if trip.Status() != reservation.StatusDraft {
		t.Fatalf("status=%v, want draft", trip.Status())
	}

	if trip.Destination != "Gili Trawangan" || trip.Pax != 4 || trip.Duration != "2 days 1 night" {
		t.Fatalf("unexpected item: %+v", trip)
	}
}

func TestSubmitEditPreservesIDAndStatus(t *testing.T) {
	existing := reservation.AttractionItem{
		ItemCore: reservation.ItemCore{
			ItemID:     "keep-me",
			ItemType:   reservation.TypeAttraction,
			ItemStatus: reservation.StatusConfirmed,
		},
		AttractionName: "Tirta Empul",
		Date:           "2026-09-02",
		Pax:            2,
	}

	session, err := newTestDispatcher().Select(reservation.TypeAttraction, existing)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	if session.Text("attractionName") != "Tirta Empul" || session.Number("pax") != 2 {
		t.Fatalf("session not seeded from existing item")
	}

	session.Set("pax", "3")

	item, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if item.ID() != "keep-me" {
		t.Fatalf("id=%v, want keep-me", item.ID())
	}

	if item.Status() != reservation.StatusConfirmed {
		t.Fatalf("status=%v, want confirmed", item.Status())
	}

	if item.(reservation.AttractionItem).Pax != 3 {
		t.Fatalf("pax=%d, want 3", item.(reservation.AttractionItem).Pax)
	}
}

func TestSubmitRequiredFields(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeAccommodation, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	_, err = session.Submit(context.Background())

	inputErr := reservation.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("err=%v, want input error", err)
	}

	fields := inputErr.Fields()
	for _, name := range []string{"hotelName", "checkIn", "checkOut"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("missing validation for %v, got %v", name, fields)
		}
	}

	// counters default to 1 and are therefore already valid
	for _, name := range []string{"rooms", "guests"} {
		if _, ok := fields[name]; ok {
			t.Fatalf("%v defaulted to 1 and must not be flagged", name)
		}
	}
}

func TestSubmitIDGenFailure(t *testing.T) {
	session, err := NewDispatcher(&seqIDGen{fail: true}).Select(reservation.TypeOpenTrips, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("destination", "Lombok")
	session.Set("date", "2026-09-14")
	session.Set("duration", "1 day")

	if _, err := session.Submit(context.Background()); !errors.Is(err, reservation.ErrNextID) {
		t.Fatalf("err=%v, want ErrNextID", err)
	}
}

func TestCheckInAdvancesCheckOut(t *testing.T) {
	cases := []struct {
		name     string
		checkOut string
		checkIn  string
		want     string
	}{
		{"unset checkout follows", "", "2025-03-10", "2025-03-11"},
		{"earlier checkout advances", "2025-03-09", "2025-03-10", "2025-03-11"},
		{"equal checkout advances", "2025-03-10", "2025-03-10", "2025-03-11"},
		{"later checkout stays", "2025-03-20", "2025-03-10", "2025-03-20"},
	}

	for _, tt := range cases {
		session, err := newTestDispatcher().Select(reservation.TypeAccommodation, nil)
		if err != nil {
			t.Fatalf("%s: select: %v", tt.name, err)
		}

		session.Set("checkOut", tt.checkOut)
		session.Set("checkIn", tt.checkIn)

		if got := session.Text("checkOut"); got != tt.want {
			t.Fatalf("%s: checkOut=%q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSubmissionDateAdvancesCompletionDate(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeTravelDocument, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("submissionDate", "2026-09-01")

	if got := session.Text("completionDate"); got != "2026-09-08" {
		t.Fatalf("completionDate=%q, want 2026-09-08", got)
	}
}

func TestDepartureDateClearsEarlierReturnDate(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeAirTicket, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("returnDate", "2026-09-05")
	session.Set("departureDate", "2026-09-10")

	if got := session.Text("returnDate"); got != "" {
		t.Fatalf("returnDate=%q, want cleared", got)
	}

	session.Set("returnDate", "2026-09-20")
	session.Set("departureDate", "2026-09-12")

	if got := session.Text("returnDate"); got != "2026-09-20" {
		t.Fatalf("later returnDate must survive, got %q", got)
	}
}

func TestVehicleClampsPax(t *testing.T) {
	cases := []struct {
		vehicle string
		pax     int
		want    int
	}{
		{"Bus (25-30 seats)", 45, 45},
		{"Van (10-12 seats)", 45, 12},
		{"Minivan (7 seats)", 12, 7},
		{"Standard Car (4 seats)", 7, 4},
		{"Premium Car", 3, 3},
	}

	for _, tt := range cases {
		session, err := newTestDispatcher().Select(reservation.TypeTransferTransport, nil)
		if err != nil {
			t.Fatalf("select: %v", err)
		}

		session.Set("pax", fmt.Sprint(tt.pax))
		session.Set("vehicle", tt.vehicle)

		if got := session.Number("pax"); got != tt.want {
			t.Fatalf("%s with %d pax: got %d, want %d", tt.vehicle, tt.pax, got, tt.want)
		}
	}
}

func TestCounterClamping(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeAirTicket, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("passengers", "99")

	if got := session.Number("passengers"); got != 9 {
		t.Fatalf("passengers=%d, want clamped to 9", got)
	}

	session.Set("passengers", "0")

	if got := session.Number("passengers"); got != 1 {
		t.Fatalf("passengers=%d, want clamped to 1", got)
	}

	session.Set("passengers", "not a number")

	if got := session.Number("passengers"); got != 1 {
		t.Fatalf("passengers=%d, want default after junk input", got)
	}
}

func TestOptionalCounterAllowsUnset(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeOtherServices, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("quantity", "3")
	session.Step("quantity", -3)

	if got := session.Number("quantity"); got != 0 {
		t.Fatalf("quantity=%d, want 0 (unset)", got)
	}
}

func TestStep(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeOpenTrips, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Step("pax", 3)

	if got := session.Number("pax"); got != 4 {
		t.Fatalf("pax=%d, want 4", got)
	}

	session.Step("pax", -10)

	if got := session.Number("pax"); got != 1 {
		t.Fatalf("pax=%d, want floor of 1", got)
	}
}

func TestUnknownFieldIgnored(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeOpenTrips, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("hotelName", "Smuggled Inn")
	session.Set("destination", "Ubud")
	session.Set("date", "2026-09-14")
	session.Set("duration", "1 day")

	item, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, ok := item.(reservation.OpenTripsItem); !ok {
		t.Fatalf("got %T, want OpenTripsItem", item)
	}
}

func TestToggleInclusions(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeTourPackage, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Toggle("Tour guide")
	session.Toggle("Daily breakfast")
	session.Toggle("Tour guide")

	got := session.Inclusions()
	if len(got) != 1 || got[0] != "Daily breakfast" {
		t.Fatalf("inclusions=%v, want [Daily breakfast]", got)
	}
}

func TestSwapCities(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeAirTicket, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("from", "DPS")
	session.Set("to", "SIN")
	session.SwapCities()

	if session.Text("from") != "SIN" || session.Text("to") != "DPS" {
		t.Fatalf("swap failed: from=%q to=%q", session.Text("from"), session.Text("to"))
	}
}

func TestRoundtripRequiresReturnDate(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeAirTicket, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("flightType", "roundtrip")
	session.Set("from", "DPS")
	session.Set("to", "SIN")
	session.Set("departureDate", "2026-09-10")

	_, err = session.Submit(context.Background())

	inputErr := reservation.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("err=%v, want input error", err)
	}

	if _, ok := inputErr.Fields()["returnDate"]; !ok {
		t.Fatalf("returnDate missing from validation: %v", inputErr.Fields())
	}

	session.Set("returnDate", "2026-09-17")

	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit with return date: %v", err)
	}
}

func TestInvalidPriceRejected(t *testing.T) {
	session, err := newTestDispatcher().Select(reservation.TypeOtherServices, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	session.Set("serviceName", "Photographer")
	session.Set("description", "half day shoot")
	session.Set("price", "a lot")

	_, err = session.Submit(context.Background())

	inputErr := reservation.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("err=%v, want input error", err)
	}

	if _, ok := inputErr.Fields()["price"]; !ok {
		t.Fatalf("price missing from validation: %v", inputErr.Fields())
	}
}

func TestEverySchemaBuildsItsVariant(t *testing.T) {
	values := map[reservation.ItemType]map[string]string{
		reservation.TypeOpenTrips:         {"destination": "Gili", "date": "2026-09-14", "duration": "1 day"},
		reservation.TypeAccommodation:     {"hotelName": "Reddison", "checkIn": "2026-09-10", "checkOut": "2026-09-12"},
		reservation.TypeAttraction:        {"attractionName": "Tirta Empul", "date": "2026-09-02"},
		reservation.TypeTransferTransport: {"route": "Airport - Ubud", "date": "2026-09-01", "time": "14:00", "vehicle": "Standard Car (4 seats)"},
		reservation.TypeTravelDocument:    {"destination": "Japan", "submissionDate": "2026-09-01"},
		reservation.TypeAirTicket:         {"from": "DPS", "to": "SIN", "departureDate": "2026-09-10"},
		reservation.TypeTourPackage:       {"packageName": "Bali Highlights", "date": "2026-09-05", "duration": "3 days 2 nights"},
		reservation.TypeOtherServices:     {"serviceName": "SIM card", "description": "two local SIMs"},
	}

	for itemType, fields := range values {
		session, err := newTestDispatcher().Select(itemType, nil)
		if err != nil {
			t.Fatalf("%v: select: %v", itemType, err)
		}

		for name, value := range fields {
			session.Set(name, value)
		}

		item, err := session.Submit(context.Background())
		if err != nil {
			t.Fatalf("%v: submit: %v", itemType, err)
		}

		if item.Type() != itemType {
			t.Fatalf("%v: built item has type %v", itemType, item.Type())
		}
	}
}
