package reservation

// CanSave reports whether the working state may be committed in the given
// mode. Drafts are never gated; confirming needs at least one item plus the
// customer's name and phone.
func CanSave(mode SaveMode, customer CustomerInfo, items []Item) bool {
	if mode == SaveDraft {
		return true
	}

	return len(items) > 0 && customer.Name != "" && customer.Phone != ""
}

// Confirm returns a new list with every item's status set to confirmed. The
// input items are left untouched; confirming an already-confirmed item is a
// no-op.
func Confirm(items []Item) []Item {
	confirmed := make([]Item, 0, len(items))

	for _, item := range items {
		switch v := item.(type) {
		case OpenTripsItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case AccommodationItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case AttractionItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case TransferTransportItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case TravelDocumentItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case AirTicketItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case TourPackageItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		case OtherServicesItem:
			v.ItemStatus = StatusConfirmed
			confirmed = append(confirmed, v)
		default:
			confirmed = append(confirmed, item)
		}
	}

	return confirmed
}
