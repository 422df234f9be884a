package form

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/madewira/tripdesk/internal/catalog"
	"github.com/madewira/tripdesk/internal/reservation"
)

// Session holds the uncommitted field state for exactly one variant. It is
// discarded on cancel; nothing reaches the item list until Submit succeeds.
type Session struct {
	dispatcher *Dispatcher
	schema     Schema
	existing   reservation.Item
	text       map[string]string
	nums       map[string]int
	inclusions []string
}

func (s *Session) Type() reservation.ItemType {
	return s.schema.Type
}

func (s *Session) Fields() []Field {
	return s.schema.Fields
}

func (s *Session) Text(field string) string {
	return s.text[field]
}

func (s *Session) Number(field string) int {
	return s.nums[field]
}

func (s *Session) Inclusions() []string {
	return slices.Clone(s.inclusions)
}

func (s *Session) seed() {
	for _, field := range s.schema.Fields {
		switch field.Kind {
		case catalog.KindCounter:
			s.nums[field.Name] = field.DefaultNum
		default:
			s.text[field.Name] = field.DefaultText
		}
	}

	if s.existing == nil {
		return
	}

	switch v := s.existing.(type) {
	case reservation.OpenTripsItem:
		s.text["destination"] = v.Destination
		s.text["date"] = v.Date
		s.text["duration"] = v.Duration
		s.nums["pax"] = v.Pax
	case reservation.AccommodationItem:
		s.text["hotelName"] = v.HotelName
		s.text["checkIn"] = v.CheckIn
		s.text["checkOut"] = v.CheckOut
		s.nums["rooms"] = v.Rooms
		s.nums["guests"] = v.Guests
	case reservation.AttractionItem:
		s.text["attractionName"] = v.AttractionName
		s.text["date"] = v.Date
		s.text["time"] = v.Time
		s.nums["pax"] = v.Pax
	case reservation.TransferTransportItem:
		s.text["service"] = v.Service
		s.text["route"] = v.Route
		s.text["date"] = v.Date
		s.text["time"] = v.Time
		s.text["vehicle"] = v.Vehicle
		s.nums["pax"] = v.Pax
	case reservation.TravelDocumentItem:
		s.text["documentType"] = v.DocumentType
		s.text["destination"] = v.Destination
		s.text["submissionDate"] = v.SubmissionDate
		s.text["completionDate"] = v.CompletionDate
		s.nums["applicants"] = v.Applicants
	case reservation.AirTicketItem:
		s.text["flightType"] = v.FlightType
		s.text["from"] = v.From
		s.text["to"] = v.To
		s.text["departureDate"] = v.DepartureDate
		s.text["returnDate"] = v.ReturnDate
		s.text["class"] = v.Class
		s.nums["passengers"] = v.Passengers
	case reservation.TourPackageItem:
		s.text["packageName"] = v.PackageName
		s.text["date"] = v.Date
		s.text["duration"] = v.Duration
		s.nums["pax"] = v.Pax
		s.inclusions = slices.Clone(v.Inclusions)
	case reservation.OtherServicesItem:
		s.text["serviceName"] = v.ServiceName
		s.text["description"] = v.Description
		s.text["date"] = v.Date
		s.nums["quantity"] = v.Quantity

		if v.Price > 0 {
			s.text["price"] = strconv.FormatFloat(v.Price, 'f', -1, 64)
		}
	}
}

// Set applies one field edit and runs the field's derived-field rule, if any.
// Fields not in this session's schema are ignored: a submission can never
// smuggle another variant's fields in.
func (s *Session) Set(name, value string) {
	field, ok := s.schema.field(name)
	if !ok {
		return
	}

	switch {
	case name == "inclusions":
		s.setInclusions(value)
	case field.Kind == catalog.KindCounter:
		s.setCounter(field, value)
	default:
		s.text[name] = value
	}

	if field.OnChange != nil {
		field.OnChange(s, value)
	}
}

func (s *Session) setCounter(field Field, value string) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		n = field.DefaultNum
	}

	s.nums[field.Name] = clampCounter(field, n)
}

func (s *Session) setInclusions(value string) {
	s.inclusions = s.inclusions[:0]

	for _, inclusion := range strings.Split(value, ",") {
		if inclusion = strings.TrimSpace(inclusion); inclusion != "" {
			s.inclusions = append(s.inclusions, inclusion)
		}
	}
}

// Step moves a counter by delta, clamping to the field's bounds. This is the
// increment/decrement control path: it can never leave the range.
func (s *Session) Step(name string, delta int) {
	field, ok := s.schema.field(name)
	if !ok || field.Kind != catalog.KindCounter {
		return
	}

	s.nums[name] = clampCounter(field, s.nums[name]+delta)
}

func clampCounter(field Field, n int) int {
	if !field.Required && n <= 0 {
		return 0
	}

	return min(max(n, field.Min), field.Max)
}

// Toggle flips one inclusion on or off.
func (s *Session) Toggle(inclusion string) {
	if idx := slices.Index(s.inclusions, inclusion); idx >= 0 {
		s.inclusions = slices.Delete(s.inclusions, idx, idx+1)

		return
	}

	s.inclusions = append(s.inclusions, inclusion)
}

// SwapCities exchanges the from/to pair in one operation.
func (s *Session) SwapCities() {
	if _, ok := s.schema.field("from"); !ok {
		return
	}

	s.text["from"], s.text["to"] = s.text["to"], s.text["from"]
}

// Submit validates required fields and produces the finished item. When the
// session was opened on an existing item the id and status carry over;
// otherwise a fresh id is minted and the item starts as a draft.
func (s *Session) Submit(ctx context.Context) (reservation.Item, error) {
	inputErr := reservation.NewInputError()

	for _, field := range s.schema.Fields {
		if !field.Required {
			continue
		}

		if field.Kind == catalog.KindCounter {
			if s.nums[field.Name] <= 0 {
				inputErr.AddError(field.Name, fmt.Sprintf("provide %s", field.Label))
			}

			continue
		}

		if s.text[field.Name] == "" {
			inputErr.AddError(field.Name, fmt.Sprintf("provide %s", field.Label))
		}
	}

	if price := s.text["price"]; price != "" {
		if _, err := strconv.ParseFloat(price, 64); err != nil {
			inputErr.AddError("price", "provide a valid price")
		}
	}

	if s.schema.Validate != nil {
		s.schema.Validate(s, inputErr)
	}

	if inputErr.FieldsCount() > 0 {
		return nil, inputErr
	}

	core := reservation.ItemCore{
		ItemType:   s.schema.Type,
		ItemStatus: reservation.StatusDraft,
	}

	if s.existing != nil {
		core.ItemID = s.existing.ID()
		core.ItemStatus = s.existing.Status()
	} else {
		id, err := s.dispatcher.idGenerator.GetID(ctx)
		if err != nil {
			return nil, reservation.ErrNextID
		}

		core.ItemID = id
	}

	return s.buildItem(core), nil
}

func (s *Session) buildItem(core reservation.ItemCore) reservation.Item {
	switch s.schema.Type {
	case reservation.TypeOpenTrips:
		return reservation.OpenTripsItem{
			ItemCore:    core,
			Destination: s.text["destination"],
			Date:        s.text["date"],
			Pax:         s.nums["pax"],
			Duration:    s.text["duration"],
		}
	case reservation.TypeAccommodation:
		return reservation.AccommodationItem{
			ItemCore:  core,
			HotelName: s.text["hotelName"],
			CheckIn:   s.text["checkIn"],
			CheckOut:  s.text["checkOut"],
			Rooms:     s.nums["rooms"],
			Guests:    s.nums["guests"],
		}
	case reservation.TypeAttraction:
		return reservation.AttractionItem{
			ItemCore:       core,
			AttractionName: s.text["attractionName"],
			Date:           s.text["date"],
			Pax:            s.nums["pax"],
			Time:           s.text["time"],
		}
	case reservation.TypeTransferTransport:
		return reservation.TransferTransportItem{
			ItemCore: core,
			Service:  s.text["service"],
			Route:    s.text["route"],
			Date:     s.text["date"],
			Time:     s.text["time"],
			Vehicle:  s.text["vehicle"],
			Pax:      s.nums["pax"],
		}
	case reservation.TypeTravelDocument:
		return reservation.TravelDocumentItem{
			ItemCore:       core,
			DocumentType:   s.text["documentType"],
			Destination:    s.text["destination"],
			SubmissionDate: s.text["submissionDate"],
			CompletionDate: s.text["completionDate"],
			Applicants:     s.nums["applicants"],
		}
	case reservation.TypeAirTicket:
		return reservation.AirTicketItem{
			ItemCore:      core,
			FlightType:    s.text["flightType"],
			From:          s.text["from"],
			To:            s.text["to"],
			DepartureDate: s.text["departureDate"],
			ReturnDate:    s.text["returnDate"],
			Passengers:    s.nums["passengers"],
			Class:         s.text["class"],
		}
	case reservation.TypeTourPackage:
		return reservation.TourPackageItem{
			ItemCore:    core,
			PackageName: s.text["packageName"],
			Date:        s.text["date"],
			Duration:    s.text["duration"],
			Pax:         s.nums["pax"],
			Inclusions:  slices.Clone(s.inclusions),
		}
	case reservation.TypeOtherServices:
		price, _ := strconv.ParseFloat(s.text["price"], 64)

		return reservation.OtherServicesItem{
			ItemCore:    core,
			ServiceName: s.text["serviceName"],
			Description: s.text["description"],
			Date:        s.text["date"],
			Quantity:    s.nums["quantity"],
			Price:       price,
		}
	default:
		return nil
	}
}
