package catalog

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindTime     FieldKind = "time"
	KindTel      FieldKind = "tel"
	KindSelect   FieldKind = "select"
	KindTextarea FieldKind = "textarea"
	KindCounter  FieldKind = "counter"
)

type FieldDescriptor struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
}

type QuickCategory struct {
	Value  string            `json:"value"`
	Label  string            `json:"label"`
	Icon   string            `json:"icon"`
	Fields []FieldDescriptor `json:"fields"`
}

// commonFields is the shared tail appended to every quick category. The
// category-specific fields are declared per category so each keeps control
// over its own ordering; contact and notes are declared once here.
var commonFields = []FieldDescriptor{
	{ID: "contactNumber", Label: "Contact Number", Kind: KindTel, Placeholder: "e.g. +62 812 3456 7890"},
	{ID: "notes", Label: "Notes", Kind: KindTextarea, Placeholder: "Pickup point, special requests..."},
}

var quickCategories = []QuickCategory{
	{
		Value: "TOUR",
		Label: "Tour",
		Icon:  "MapPin",
		Fields: []FieldDescriptor{
			{ID: "guestName", Label: "Guest Name", Kind: KindText, Placeholder: "e.g. John Doe", Required: true},
			{ID: "tourName", Label: "Tour", Kind: KindText, Placeholder: "e.g. Sunset Tour", Required: true},
			{ID: "date", Label: "Date", Kind: KindDate, Required: true},
			{ID: "time", Label: "Time", Kind: KindTime},
			{ID: "pax", Label: "Pax", Kind: KindCounter, Required: true},
		},
	},
	{
		Value: "TRANSFER",
		Label: "Transfer",
		Icon:  "Car",
		Fields: []FieldDescriptor{
			{ID: "guestName", Label: "Guest Name", Kind: KindText, Placeholder: "e.g. John Doe", Required: true},
			{ID: "route", Label: "Route", Kind: KindText, Placeholder: "e.g. Airport - Ubud", Required: true},
			{ID: "date", Label: "Date", Kind: KindDate, Required: true},
			{ID: "time", Label: "Pickup Time", Kind: KindTime, Required: true},
			{ID: "vehicle", Label: "Vehicle", Kind: KindSelect, Options: []string{"Sedan", "MPV", "Minibus", "Bus"}, Required: true},
			{ID: "pax", Label: "Pax", Kind: KindCounter, Required: true},
		},
	},
	{
		Value: "FAST_BOAT",
		Label: "Fast Boat",
		Icon:  "Ship",
		Fields: []FieldDescriptor{
			{ID: "guestName", Label: "Guest Name", Kind: KindText, Placeholder: "e.g. John Doe", Required: true},
			{ID: "route", Label: "Route", Kind: KindSelect, Options: []string{"Sanur - Nusa Penida", "Sanur - Lembongan", "Padang Bai - Gili T", "Serangan - Gili Air"}, Required: true},
			{ID: "date", Label: "Date", Kind: KindDate, Required: true},
			{ID: "time", Label: "Departure", Kind: KindTime},
			{ID: "pax", Label: "Pax", Kind: KindCounter, Required: true},
		},
	},
	{
		Value: "CHARTER",
		Label: "Charter",
		Icon:  "Compass",
		Fields: []FieldDescriptor{
			{ID: "guestName", Label: "Guest Name", Kind: KindText, Placeholder: "e.g. John Doe", Required: true},
			{ID: "destination", Label: "Destination", Kind: KindText, Placeholder: "e.g. East Bali", Required: true},
			{ID: "date", Label: "Date", Kind: KindDate, Required: true},
			{ID: "duration", Label: "Duration", Kind: KindSelect, Options: []string{"Half Day", "Full Day", "Multi Day"}, Required: true},
			{ID: "pax", Label: "Pax", Kind: KindCounter, Required: true},
		},
	},
}

// QuickCategories returns the quick-capture registry with the common tail
// already appended to each category's field list.
func QuickCategories() []QuickCategory {
	categories := make([]QuickCategory, 0, len(quickCategories))

	for _, category := range quickCategories {
		fields := make([]FieldDescriptor, 0, len(category.Fields)+len(commonFields))
		fields = append(fields, category.Fields...)
		fields = append(fields, commonFields...)

		category.Fields = fields
		categories = append(categories, category)
	}

	return categories
}

// DefaultQuickCategory is where the reconciler lands when an intent carries
// no recognizable category: the first registry entry.
func DefaultQuickCategory() QuickCategory {
	return QuickCategories()[0]
}

func LookupQuick(value string) (QuickCategory, bool) {
	for _, category := range QuickCategories() {
		if category.Value == value {
			return category, true
		}
	}

	return QuickCategory{}, false
}
