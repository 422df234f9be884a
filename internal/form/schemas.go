package form

import (
	"github.com/madewira/tripdesk/internal/catalog"
	"github.com/madewira/tripdesk/internal/reservation"
)

var tripDurations = []string{
	"1 day", "2 days 1 night", "3 days 2 nights", "4 days 3 nights",
	"5 days 4 nights", "1 week", "Custom",
}

var packageDurations = []string{
	"1 day", "2 days 1 night", "3 days 2 nights", "4 days 3 nights",
	"5 days 4 nights", "1 week", "2 weeks", "Custom",
}

var transferVehicles = []string{
	"Standard Car (4 seats)", "Minivan (7 seats)", "Van (10-12 seats)",
	"Bus (25-30 seats)", "Premium Car", "SUV",
}

var schemas = map[reservation.ItemType]Schema{
	reservation.TypeOpenTrips: {
		Type: reservation.TypeOpenTrips,
		Fields: []Field{
			{Name: "destination", Label: "Destination", Kind: catalog.KindText, Required: true},
			{Name: "date", Label: "Date", Kind: catalog.KindDate, Required: true},
			{Name: "pax", Label: "Number of Pax", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 50, DefaultNum: 1},
			{Name: "duration", Label: "Duration", Kind: catalog.KindSelect, Required: true, Options: tripDurations},
		},
	},
	reservation.TypeAccommodation: {
		Type: reservation.TypeAccommodation,
		Fields: []Field{
			{Name: "hotelName", Label: "Hotel Name", Kind: catalog.KindText, Required: true},
			{Name: "checkIn", Label: "Check-in Date", Kind: catalog.KindDate, Required: true, OnChange: advanceWhenNotAfter("checkOut", 1)},
			{Name: "checkOut", Label: "Check-out Date", Kind: catalog.KindDate, Required: true},
			{Name: "rooms", Label: "Number of Rooms", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 10, DefaultNum: 1},
			{Name: "guests", Label: "Number of Guests", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 50, DefaultNum: 1},
		},
	},
	reservation.TypeAttraction: {
		Type: reservation.TypeAttraction,
		Fields: []Field{
			{Name: "attractionName", Label: "Attraction Name", Kind: catalog.KindText, Required: true},
			{Name: "date", Label: "Date", Kind: catalog.KindDate, Required: true},
			{Name: "pax", Label: "Number of Pax", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 50, DefaultNum: 1},
			{Name: "time", Label: "Time", Kind: catalog.KindTime},
		},
	},
	reservation.TypeTransferTransport: {
		Type: reservation.TypeTransferTransport,
		Fields: []Field{
			{Name: "service", Label: "Service Type", Kind: catalog.KindSelect, Required: true, Options: []string{"transfer", "transport"}, DefaultText: "transfer"},
			{Name: "route", Label: "Route", Kind: catalog.KindText, Required: true},
			{Name: "date", Label: "Date", Kind: catalog.KindDate, Required: true},
			{Name: "time", Label: "Pickup Time", Kind: catalog.KindTime, Required: true},
			{Name: "vehicle", Label: "Vehicle", Kind: catalog.KindSelect, Required: true, Options: transferVehicles, OnChange: clampPaxToVehicle("pax")},
			{Name: "pax", Label: "Number of Pax", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 50, DefaultNum: 1},
		},
	},
	reservation.TypeTravelDocument: {
		Type: reservation.TypeTravelDocument,
		Fields: []Field{
			{Name: "documentType", Label: "Document Type", Kind: catalog.KindSelect, Required: true, Options: []string{"visa", "passport", "insurance", "other"}, DefaultText: "visa"},
			{Name: "destination", Label: "Destination", Kind: catalog.KindText, Required: true},
			{Name: "submissionDate", Label: "Submission Date", Kind: catalog.KindDate, Required: true, OnChange: advanceWhenNotAfter("completionDate", 7)},
			{Name: "completionDate", Label: "Completion Date", Kind: catalog.KindDate},
			{Name: "applicants", Label: "Number of Applicants", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 20, DefaultNum: 1},
		},
	},
	reservation.TypeAirTicket: {
		Type: reservation.TypeAirTicket,
		Fields: []Field{
			{Name: "flightType", Label: "Flight Type", Kind: catalog.KindSelect, Required: true, Options: []string{"oneway", "roundtrip", "multicity"}, DefaultText: "oneway"},
			{Name: "from", Label: "From", Kind: catalog.KindText, Required: true},
			{Name: "to", Label: "To", Kind: catalog.KindText, Required: true},
			{Name: "departureDate", Label: "Departure Date", Kind: catalog.KindDate, Required: true, OnChange: clearWhenEarlier("returnDate")},
			{Name: "returnDate", Label: "Return Date", Kind: catalog.KindDate},
			{Name: "passengers", Label: "Passengers", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 9, DefaultNum: 1},
			{Name: "class", Label: "Class", Kind: catalog.KindSelect, Required: true, Options: []string{"economy", "business", "first"}, DefaultText: "economy"},
		},
		Validate: func(s *Session, inputErr *reservation.InputError) {
			if s.text["flightType"] == "roundtrip" && s.text["returnDate"] == "" {
				inputErr.AddError("returnDate", "provide a return date for roundtrip flights")
			}
		},
	},
	reservation.TypeTourPackage: {
		Type: reservation.TypeTourPackage,
		Fields: []Field{
			{Name: "packageName", Label: "Package Name", Kind: catalog.KindText, Required: true},
			{Name: "date", Label: "Date", Kind: catalog.KindDate, Required: true},
			{Name: "duration", Label: "Duration", Kind: catalog.KindSelect, Required: true, Options: packageDurations},
			{Name: "pax", Label: "Number of Pax", Kind: catalog.KindCounter, Required: true, Min: 1, Max: 50, DefaultNum: 1},
			{Name: "inclusions", Label: "Inclusions", Kind: catalog.KindSelect, Options: []string{
				"Hotel accommodation", "Daily breakfast", "Airport transfer", "Tour guide",
				"Entrance fees", "Transportation", "Lunch & dinner", "Travel insurance",
			}},
		},
	},
	reservation.TypeOtherServices: {
		Type: reservation.TypeOtherServices,
		Fields: []Field{
			{Name: "serviceName", Label: "Service Name", Kind: catalog.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: catalog.KindTextarea, Required: true},
			{Name: "date", Label: "Date", Kind: catalog.KindDate},
			{Name: "quantity", Label: "Quantity", Kind: catalog.KindCounter, Min: 1, Max: 99},
			{Name: "price", Label: "Price", Kind: catalog.KindNumber},
		},
	},
}
