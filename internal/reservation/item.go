package reservation

import (
	"encoding/json"
	"fmt"
)

type ItemType string

const (
	TypeOpenTrips         ItemType = "open-trips"
	TypeAccommodation     ItemType = "accommodation"
	TypeAttraction        ItemType = "attraction"
	TypeTransferTransport ItemType = "transfer-transport"
	TypeTravelDocument    ItemType = "travel-document"
	TypeAirTicket         ItemType = "air-ticket"
	TypeTourPackage       ItemType = "tour-package"
	TypeOtherServices     ItemType = "other-services"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
)

// ItemCore carries the fields every variant has. The id is immutable after
// creation and unique within a reservation; status moves draft -> confirmed
// only, and only for the whole item.
type ItemCore struct {
	ItemID     string   `json:"id"`
	ItemType   ItemType `json:"type"`
	ItemStatus Status   `json:"status"`
}

func (c ItemCore) ID() string       { return c.ItemID }
func (c ItemCore) Type() ItemType   { return c.ItemType }
func (c ItemCore) Status() Status   { return c.ItemStatus }
func (c ItemCore) variant() {}

// Item is the closed set of reservation item variants. Which fields are
// present is fully determined by Type; no value mixes fields of two variants.
type Item interface {
	ID() string
	Type() ItemType
	Status() Status
	variant()
}

type OpenTripsItem struct {
	ItemCore
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Pax         int    `json:"pax"`
	Duration    string `json:"duration"`
}

type AccommodationItem struct {
	ItemCore
	HotelName string `json:"hotelName"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Rooms     int    `json:"rooms"`
	Guests    int    `json:"guests"`
}

type AttractionItem struct {
	ItemCore
	AttractionName string `json:"attractionName"`
	Date           string `json:"date"`
	Pax            int    `json:"pax"`
	Time           string `json:"time,omitempty"`
}

type TransferTransportItem struct {
	ItemCore
	Service string `json:"service"` // transfer | transport
	Route   string `json:"route"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Vehicle string `json:"vehicle"`
	Pax     int    `json:"pax"`
}

type TravelDocumentItem struct {
	ItemCore
	DocumentType   string `json:"documentType"` // visa | passport | insurance | other
	Destination    string `json:"destination"`
	SubmissionDate string `json:"submissionDate"`
	CompletionDate string `json:"completionDate,omitempty"`
	Applicants     int    `json:"applicants"`
}

type AirTicketItem struct {
	ItemCore
	FlightType    string `json:"flightType"` // oneway | roundtrip | multicity
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers"`
	Class         string `json:"class"` // economy | business | first
}

type TourPackageItem struct {
	ItemCore
	PackageName string   `json:"packageName"`
	Date        string   `json:"date"`
	Duration    string   `json:"duration"`
	Pax         int      `json:"pax"`
	Inclusions  []string `json:"inclusions,omitempty"`
}

type OtherServicesItem struct {
	ItemCore
	ServiceName string  `json:"serviceName"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// DecodeItem picks the concrete variant from the type discriminant in raw.
func DecodeItem(raw json.RawMessage) (Item, error) {
	var envelope struct {
		Type ItemType `json:"type"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode item envelope: %w", err)
	}

	decode := func(dst any) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decode %v item: %w", envelope.Type, err)
		}

		return nil
	}

	switch envelope.Type {
	case TypeOpenTrips:
		var item OpenTripsItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeAccommodation:
		var item AccommodationItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeAttraction:
		var item AttractionItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeTransferTransport:
		var item TransferTransportItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeTravelDocument:
		var item TravelDocumentItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeAirTicket:
		var item AirTicketItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeTourPackage:
		var item TourPackageItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	case TypeOtherServices:
		var item OtherServicesItem
		if err := decode(&item); err != nil {
			return nil, err
		}

		return item, nil
	default:
		return nil, fmt.Errorf("item type %q: %w", envelope.Type, ErrUnknownItemType)
	}
}

// ItemList decodes a JSON array of items by discriminant.
type ItemList []Item

func (l *ItemList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode item list: %w", err)
	}

	items := make([]Item, 0, len(raws))

	for _, raw := range raws {
		item, err := DecodeItem(raw)
		if err != nil {
			return err
		}

		items = append(items, item)
	}

	*l = items

	return nil
}
