package dashboard

import (
	"unicode"
	"unicode/utf8"

	"booking-admin/internal/model"
)

const neutralColor = "bg-gray-100 text-gray-800"

var statusColors = map[model.Status]string{
	model.StatusPending:   "bg-yellow-100 text-yellow-800",
	model.StatusConfirmed: "bg-blue-100 text-blue-800",
	model.StatusCompleted: "bg-green-100 text-green-800",
	model.StatusCancelled: "bg-red-100 text-red-800",
}

var serviceLabels = map[model.ServiceType]string{
	model.ServiceGeneral:    "General Cleaning",
	model.ServiceDeep:       "Deep Cleaning",
	model.ServiceEndOfLease: "End of Lease",
	model.ServiceMoveIn:     "Move-in Cleaning",
}

var frequencyLabels = map[string]string{
	"once":        "Just Once",
	"weekly":      "Weekly",
	"fortnightly": "Fortnightly",
	"monthly":     "Monthly",
}

// StatusColor returns the badge classes for a status; unknown statuses get the neutral style.
func StatusColor(status model.Status) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return neutralColor
}

// StatusLabel capitalizes known statuses and returns anything else unchanged.
func StatusLabel(status model.Status) string {
	if !status.Valid() {
		return string(status)
	}
	return capitalize(string(status))
}

// ServiceTypeLabel returns the human label of a service type, or the raw code.
func ServiceTypeLabel(code model.ServiceType) string {
	if l, ok := serviceLabels[code]; ok {
		return l
	}
	return string(code)
}

// FrequencyLabel returns the human label of a frequency, or the value capitalized.
func FrequencyLabel(freq string) string {
	if l, ok := frequencyLabels[freq]; ok {
		return l
	}
	return capitalize(freq)
}

// FormatDate renders a date as DD/MM/YYYY, falling back to the backend's text.
func FormatDate(d model.Date) string {
	if d.Time.IsZero() {
		return d.Raw
	}
	return d.Time.Format("02/01/2006")
}

// FormatPrice prefixes the decimal text with a dollar sign.
func FormatPrice(p model.Price) string {
	if p == "" {
		return "$0"
	}
	return "$" + string(p)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Pager describes the Previous/Next controls below the table.
type Pager struct {
	Page       int
	TotalPages int
	Visible    bool
	HasPrev    bool
	HasNext    bool
}

// NewPager builds the controls for page of totalPages. They are hidden for a single page.
func NewPager(page, totalPages int) Pager {
	return Pager{
		Page:       page,
		TotalPages: totalPages,
		Visible:    totalPages > 1,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
