// Package project derives the list-row presentation of any reservation item:
// a one-line summary, a representative date string and a display icon. Every
// function here is total over the known variants and returns an empty string
// for anything it does not recognize, so one malformed item cannot blank the
// whole list.
package project

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/madewira/tripdesk/internal/catalog"
	"github.com/madewira/tripdesk/internal/reservation"
)

// Summarize builds the fixed per-variant template from that variant's own
// fields only.
func Summarize(item reservation.Item) string {
	switch v := item.(type) {
	case reservation.OpenTripsItem:
		return fmt.Sprintf("%s • %d pax • %s", v.Destination, v.Pax, v.Duration)
	case reservation.AccommodationItem:
		return fmt.Sprintf("%s • %d room(s) • %d guest(s)", v.HotelName, v.Rooms, v.Guests)
	case reservation.AttractionItem:
		summary := fmt.Sprintf("%s • %d pax", v.AttractionName, v.Pax)
		if v.Time != "" {
			summary += " • " + v.Time
		}

		return summary
	case reservation.TransferTransportItem:
		return fmt.Sprintf("%s • %s • %d pax", v.Route, v.Vehicle, v.Pax)
	case reservation.TravelDocumentItem:
		return fmt.Sprintf("%s • %s • %d applicant(s)", v.DocumentType, v.Destination, v.Applicants)
	case reservation.AirTicketItem:
		trip := "Oneway"
		if v.ReturnDate != "" {
			trip = "Roundtrip"
		}

		return fmt.Sprintf("%s → %s • %s • %d pax", v.From, v.To, trip, v.Passengers)
	case reservation.TourPackageItem:
		return fmt.Sprintf("%s • %s • %d pax", v.PackageName, v.Duration, v.Pax)
	case reservation.OtherServicesItem:
		summary := v.ServiceName
		if v.Quantity > 0 {
			summary += fmt.Sprintf(" • Qty: %d", v.Quantity)
		}

		return summary
	default:
		return ""
	}
}

// PrimaryDate picks the representative date for the list row.
func PrimaryDate(item reservation.Item) string {
	switch v := item.(type) {
	case reservation.OpenTripsItem:
		return FormatDate(v.Date)
	case reservation.AccommodationItem:
		return fmt.Sprintf("%s - %s", FormatDate(v.CheckIn), FormatDate(v.CheckOut))
	case reservation.AttractionItem:
		return FormatDate(v.Date)
	case reservation.TransferTransportItem:
		return FormatDate(v.Date)
	case reservation.TravelDocumentItem:
		return FormatDate(v.SubmissionDate)
	case reservation.AirTicketItem:
		return FormatDate(v.DepartureDate)
	case reservation.TourPackageItem:
		return FormatDate(v.Date)
	case reservation.OtherServicesItem:
		if v.Date == "" {
			return ""
		}

		return FormatDate(v.Date)
	default:
		return ""
	}
}

// Icon resolves the display icon through the registry; unknown types get "".
func Icon(t reservation.ItemType) string {
	return catalog.Icon(t)
}

// FormatDate renders an ISO date as e.g. "Jan 5, 2025". Anything that does
// not parse is returned as-is rather than failing.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, date); err != nil {
			return date
		}
	}

	return parsed.Format("Jan 2, 2006")
}

// FormatTime renders "17:30" as "5:30 PM". Anything that does not look like
// HH:MM is returned as-is.
func FormatTime(value string) string {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return value
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return value
	}

	meridiem := "AM"
	if hours >= 12 {
		meridiem = "PM"
	}

	if hours %= 12; hours == 0 {
		hours = 12
	}

	return fmt.Sprintf("%d:%s %s", hours, parts[1], meridiem)
}
