package form

import (
	"strings"
	"time"

	"github.com/madewira/tripdesk/internal/catalog"
	"github.com/madewira/tripdesk/internal/reservation"
)

const dateLayout = "2006-01-02"

// Rule is a derived-field side effect that runs after its field changes.
// Rules are conveniences, not invariants: the user may override the derived
// value afterwards.
type Rule func(s *Session, value string)

type Field struct {
	Name        string
	Label       string
	Kind        catalog.FieldKind
	Required    bool
	Options     []string
	Min         int // counter bounds; values clamp, never reject
	Max         int
	DefaultText string
	DefaultNum  int
	OnChange    Rule
}

type Schema struct {
	Type   reservation.ItemType
	Fields []Field
	// Validate adds checks that a single required flag cannot express,
	// e.g. a return date that is only required for roundtrip flights.
	Validate func(s *Session, inputErr *reservation.InputError)
}

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// advanceWhenNotAfter pushes target to the changed date plus days whenever
// target is unset or no longer after the changed date.
func advanceWhenNotAfter(target string, days int) Rule {
	return func(s *Session, value string) {
		changed, err := time.Parse(dateLayout, value)
		if err != nil {
			return
		}

		if current, err := time.Parse(dateLayout, s.text[target]); err == nil && current.After(changed) {
			return
		}

		s.text[target] = changed.AddDate(0, 0, days).Format(dateLayout)
	}
}

// clearWhenEarlier empties target when it now precedes the changed date.
func clearWhenEarlier(target string) Rule {
	return func(s *Session, value string) {
		current, err := time.Parse(dateLayout, s.text[target])
		if err != nil {
			return
		}

		if changed, err := time.Parse(dateLayout, value); err == nil && changed.After(current) {
			s.text[target] = ""
		}
	}
}

// clampPaxToVehicle reduces pax when a smaller vehicle gets picked.
func clampPaxToVehicle(target string) Rule {
	return func(s *Session, value string) {
		capacity := vehicleCapacity(value)
		if s.nums[target] > capacity {
			s.nums[target] = capacity
		}
	}
}

func vehicleCapacity(vehicle string) int {
	switch {
	case strings.Contains(vehicle, "Bus"):
		return 50
	case strings.Contains(vehicle, "Minivan"):
		return 7
	case strings.Contains(vehicle, "Van"):
		return 12
	default:
		return 4
	}
}
