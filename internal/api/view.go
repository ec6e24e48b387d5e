package api

import (
	"embed"
	"html/template"

	"booking-admin/internal/dashboard"
	"booking-admin/internal/model"
	"booking-admin/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"statusColor":    dashboard.StatusColor,
	"statusLabel":    dashboard.StatusLabel,
	"serviceLabel":   dashboard.ServiceTypeLabel,
	"frequencyLabel": dashboard.FrequencyLabel,
	"formatDate":     dashboard.FormatDate,
	"formatPrice":    dashboard.FormatPrice,
	"add":            func(a, b int) int { return a + b },
}

// LoadTemplates parses the embedded dashboard pages.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

type filterOption struct {
	Value model.Filter
	Label string
}

var filterOptions = []filterOption{
	{Value: model.FilterAll, Label: "All Bookings"},
	{Value: model.Filter(model.StatusPending), Label: "Pending"},
	{Value: model.Filter(model.StatusConfirmed), Label: "Confirmed"},
	{Value: model.Filter(model.StatusCompleted), Label: "Completed"},
	{Value: model.Filter(model.StatusCancelled), Label: "Cancelled"},
}

type bookingsPage struct {
	store.Snapshot
	Flash    *store.Notice
	Pager    dashboard.Pager
	Filters  []filterOption
	Statuses []model.Status
}

func newBookingsPage(snap store.Snapshot, flash *store.Notice) bookingsPage {
	return bookingsPage{
		Snapshot: snap,
		Flash:    flash,
		Pager:    dashboard.NewPager(snap.Page, snap.TotalPages),
		Filters:  filterOptions,
		Statuses: model.Statuses,
	}
}

type confirmDeletePage struct {
	ID     int64
	Prompt string
}

type detailPage struct {
	Detail *model.BookingDetail
}

type errorPage struct {
	Message string
}
