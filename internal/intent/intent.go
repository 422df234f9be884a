// Package intent holds the loosely-typed result of understanding free text
// and the reconciliation that merges it into the quick-capture form state.
package intent

import (
	"time"

	"github.com/madewira/tripdesk/internal/catalog"
)

// Parsed is the untrusted shape returned by the text-understanding service.
// Every field is optional and nothing about it may be assumed well-formed
// relative to the target category.
type Parsed struct {
	Category      string `json:"category,omitempty"`
	GuestName     string `json:"guestName,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Pax           *int   `json:"pax,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// FormState is the quick-capture field set the reconciler merges into.
type FormState struct {
	GuestName     string `json:"guestName"`
	ContactNumber string `json:"contactNumber"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Pax           int    `json:"pax"`
	Notes         string `json:"notes"`
}

// Reconcile merges a parsed intent into the current form state. Per field the
// precedence is intent over current over default; a field is absent when it
// is the empty string, or for pax when it is nil or non-positive (pax >= 1 is
// enforced at the form boundary, so zero carries no meaning here). The
// category resolves to a known quick category or falls back to the first
// registry entry, so the caller always has a form to show next. Reconciliation
// never fails; an ununderstandable input is rejected one layer earlier.
func Reconcile(parsed Parsed, category string, current FormState, now time.Time) (string, FormState) {
	resolved := category

	if _, ok := catalog.LookupQuick(parsed.Category); ok {
		resolved = parsed.Category
	} else if _, ok := catalog.LookupQuick(resolved); !ok {
		resolved = catalog.DefaultQuickCategory().Value
	}

	merged := FormState{
		GuestName:     coalesce(parsed.GuestName, current.GuestName),
		ContactNumber: coalesce(parsed.ContactNumber, current.ContactNumber),
		Time:          coalesce(parsed.Time, current.Time),
		Notes:         coalesce(parsed.Notes, current.Notes),
		Date:          coalesce(parsed.Date, current.Date, now.Format("2006-01-02")),
		Pax:           1,
	}

	switch {
	case parsed.Pax != nil && *parsed.Pax > 0:
		merged.Pax = *parsed.Pax
	case current.Pax > 0:
		merged.Pax = current.Pax
	}

	return resolved, merged
}

func coalesce(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
