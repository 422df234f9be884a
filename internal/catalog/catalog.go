// Package catalog is the static category registry for both intake surfaces:
// the structured work-order app with eight item types and the quick-capture
// app with four free-form categories. Nothing registers dynamically.
package catalog

import "github.com/madewira/tripdesk/internal/reservation"

type TypeDescriptor struct {
	Value reservation.ItemType `json:"value"`
	Label string               `json:"label"`
	Icon  string               `json:"icon"`
}

// ReservationTypes is order-significant: the UI renders the type picker in
// this order.
var ReservationTypes = []TypeDescriptor{
	{Value: reservation.TypeOpenTrips, Label: "Open Trips", Icon: "MapPin"},
	{Value: reservation.TypeAccommodation, Label: "Accommodation", Icon: "Bed"},
	{Value: reservation.TypeAttraction, Label: "Attraction", Icon: "Camera"},
	{Value: reservation.TypeTransferTransport, Label: "Transfer & Transport", Icon: "Car"},
	{Value: reservation.TypeTravelDocument, Label: "Travel Document", Icon: "FileText"},
	{Value: reservation.TypeAirTicket, Label: "Air Ticket", Icon: "Plane"},
	{Value: reservation.TypeTourPackage, Label: "Tour Package", Icon: "Package"},
	{Value: reservation.TypeOtherServices, Label: "Other Services", Icon: "MoreHorizontal"},
}

func Lookup(t reservation.ItemType) (TypeDescriptor, bool) {
	for _, descriptor := range ReservationTypes {
		if descriptor.Value == t {
			return descriptor, true
		}
	}

	return TypeDescriptor{}, false
}

func Label(t reservation.ItemType) string {
	descriptor, ok := Lookup(t)
	if !ok {
		return ""
	}

	return descriptor.Label
}

func Icon(t reservation.ItemType) string {
	descriptor, ok := Lookup(t)
	if !ok {
		return ""
	}

	return descriptor.Icon
}
