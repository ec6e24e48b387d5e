package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"booking-admin/internal/bookingapi"
	"booking-admin/internal/metrics"
	"booking-admin/internal/model"
	"booking-admin/internal/store"
)

// Operator-facing messages.
const (
	MsgLoadFailed    = "Failed to load bookings. Please ensure you're logged in."
	MsgStatusUpdated = "Booking status updated successfully!"
	MsgStatusFailed  = "Failed to update booking status"
	MsgStatusError   = "An error occurred while updating the booking"
	MsgDeleted       = "Booking deleted successfully!"
	MsgDeleteFailed  = "Failed to delete booking"
	MsgDeleteError   = "An error occurred while deleting the booking"

	DeletePrompt = "Are you sure you want to delete this booking?"
)

// MaxUpstreamCalls bounds the sequential backend calls behind one request.
// A list load on page p > 1 makes at most one corrective refetch, so a
// mutation costs the mutation, two list calls and the statistics reload.
// The first list view mounts on page 1 (one list call and statistics) before
// applying its query (two list calls at most).
const MaxUpstreamCalls = 4

// WriteTimeout is the HTTP write timeout that lets a request finish
// MaxUpstreamCalls backend calls of at most upstream each. A zero upstream
// timeout disables it.
func WriteTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream*MaxUpstreamCalls + 10*time.Second
}

// ErrDeleteNotConfirmed is returned when the operator declines a delete.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// BookingsAPI is the subset of the bookings backend the dashboard uses.
type BookingsAPI interface {
	ListBookings(ctx context.Context, q bookingapi.Query) (*model.BookingPage, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	DeleteBooking(ctx context.Context, id int64) error
	BookingDetail(ctx context.Context, id int64) (*model.BookingDetail, error)
}

// Notifier receives the text of every successful mutation.
type Notifier interface {
	Notify(title, body string)
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Changes are list parameter updates coming from one operator request.
// Nil fields are left as they are.
type Changes struct {
	Filter *model.Filter
	Search *string
	Page   *int
}

// Controller keeps one operator's view state in sync with the bookings backend.
type Controller struct {
	api      BookingsAPI
	state    *store.ViewState
	notifier Notifier
	log      *zap.Logger
	mounted  atomic.Bool
}

// NewController creates a controller with a fresh view state. notifier may be nil.
func NewController(api BookingsAPI, notifier Notifier, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		api:      api,
		state:    store.New(),
		notifier: notifier,
		log:      log,
	}
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() store.Snapshot {
	return c.state.Snapshot()
}

// TakeNotice returns the pending mutation notice, if any, and clears it.
func (c *Controller) TakeNotice() *store.Notice {
	return c.state.TakeNotice()
}

// Mount loads bookings and statistics.
func (c *Controller) Mount(ctx context.Context) {
	c.mounted.Store(true)
	_ = c.LoadBookings(ctx)
	c.LoadStatistics(ctx)
}

// EnsureMounted mounts the controller the first time it is called.
// It reports whether a mount happened.
func (c *Controller) EnsureMounted(ctx context.Context) bool {
	if !c.mounted.CompareAndSwap(false, true) {
		return false
	}
	_ = c.LoadBookings(ctx)
	c.LoadStatistics(ctx)
	return true
}

// Refresh reloads bookings and statistics on operator request.
func (c *Controller) Refresh(ctx context.Context) {
	c.Mount(ctx)
}

// LoadBookings fetches the page selected by the current filter, search and page.
// On failure the error banner is set and loaded bookings are kept.
func (c *Controller) LoadBookings(ctx context.Context) error {
	return c.loadBookings(ctx, true)
}

// loadBookings makes at most one corrective refetch: after a 404 for a
// page past the end, or after a response that shrank the page count.
func (c *Controller) loadBookings(ctx context.Context, retry bool) error {
	gen, p := c.state.BeginLoad()
	defer c.state.EndLoad()

	page, err := c.api.ListBookings(ctx, bookingapi.Query{
		Page:   p.Page,
		Status: p.Filter.Status(),
		Search: p.Search,
	})
	if err != nil {
		if retry && isNotFound(err) && c.state.FallbackPage(gen) {
			c.log.Info("page out of range, falling back",
				zap.String("filter", string(p.Filter)),
				zap.Int("page", p.Page))
			return c.loadBookings(ctx, false)
		}
		c.log.Error("failed to load bookings",
			zap.String("filter", string(p.Filter)),
			zap.Int("page", p.Page),
			zap.Error(err))
		c.state.FailLoad(gen, MsgLoadFailed)
		return err
	}

	if !c.state.ApplyBookings(gen, page) {
		c.log.Debug("dropped superseded bookings response", zap.Uint64("generation", gen))
		return nil
	}
	// The list shrank below the current page, e.g. after deleting the last row of the last page.
	if retry && c.state.ClampPage() {
		return c.loadBookings(ctx, false)
	}
	return nil
}

// LoadStatistics replaces the statistics snapshot. Failures are only logged.
func (c *Controller) LoadStatistics(ctx context.Context) {
	stats, err := c.api.Statistics(ctx)
	if err != nil {
		c.log.Error("failed to load statistics", zap.Error(err))
		return
	}
	c.state.SetStatistics(stats)
}

// SetBookingStatus changes a booking's status and resyncs on success.
func (c *Controller) SetBookingStatus(ctx context.Context, id int64, status model.Status) error {
	if err := c.api.UpdateStatus(ctx, id, status); err != nil {
		msg := MsgStatusError
		if isStatusError(err) {
			msg = MsgStatusFailed
		}
		c.fail("update_status", id, msg, err)
		return err
	}

	_ = c.LoadBookings(ctx)
	c.LoadStatistics(ctx)
	c.succeed("update_status", id, MsgStatusUpdated)
	return nil
}

// DeleteBooking removes a booking after the confirmer agrees.
// Nothing is sent when the confirmer declines or is nil.
func (c *Controller) DeleteBooking(ctx context.Context, id int64, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(DeletePrompt) {
		return ErrDeleteNotConfirmed
	}

	if err := c.api.DeleteBooking(ctx, id); err != nil {
		msg := MsgDeleteError
		if isStatusError(err) {
			msg = MsgDeleteFailed
		}
		c.fail("delete", id, msg, err)
		return err
	}

	c.succeed("delete", id, MsgDeleted)
	_ = c.LoadBookings(ctx)
	c.LoadStatistics(ctx)
	return nil
}

// BookingDetail fetches the detail view of one booking.
func (c *Controller) BookingDetail(ctx context.Context, id int64) (*model.BookingDetail, error) {
	detail, err := c.api.BookingDetail(ctx, id)
	if err != nil {
		c.log.Error("failed to load booking detail", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return detail, nil
}

// SetFilter changes the status filter; a change resets the page and reloads.
func (c *Controller) SetFilter(ctx context.Context, f model.Filter) error {
	if !c.state.SetFilter(f) {
		return nil
	}
	return c.LoadBookings(ctx)
}

// SetSearch changes the search term; a change resets the page and reloads.
func (c *Controller) SetSearch(ctx context.Context, term string) error {
	if !c.state.SetSearch(term) {
		return nil
	}
	return c.LoadBookings(ctx)
}

// SetPage moves to page p and reloads when it changed.
func (c *Controller) SetPage(ctx context.Context, p int) error {
	if !c.state.SetPage(p) {
		return nil
	}
	return c.LoadBookings(ctx)
}

// NextPage advances one page; a no-op on the last page.
func (c *Controller) NextPage(ctx context.Context) error {
	if !c.state.NextPage() {
		return nil
	}
	return c.LoadBookings(ctx)
}

// PrevPage goes back one page; a no-op on the first page.
func (c *Controller) PrevPage(ctx context.Context) error {
	if !c.state.PrevPage() {
		return nil
	}
	return c.LoadBookings(ctx)
}

// Apply applies several list changes and reloads once if any of them took effect.
// Filter and search are applied before the page so an explicit page survives their reset.
func (c *Controller) Apply(ctx context.Context, ch Changes) error {
	changed := false
	if ch.Filter != nil {
		changed = c.state.SetFilter(*ch.Filter) || changed
	}
	if ch.Search != nil {
		changed = c.state.SetSearch(*ch.Search) || changed
	}
	if ch.Page != nil {
		changed = c.state.SetPage(*ch.Page) || changed
	}
	if !changed {
		return nil
	}
	return c.LoadBookings(ctx)
}

func (c *Controller) succeed(action string, id int64, msg string) {
	metrics.MutationsTotal.WithLabelValues(action, "ok").Inc()
	c.log.Info("booking mutated", zap.String("action", action), zap.Int64("id", id))
	c.state.SetNotice(store.NoticeSuccess, msg)
	if c.notifier != nil {
		c.notifier.Notify(msg, fmt.Sprintf("Booking #%d", id))
	}
}

func (c *Controller) fail(action string, id int64, msg string, err error) {
	metrics.MutationsTotal.WithLabelValues(action, "failed").Inc()
	c.log.Error("booking mutation failed",
		zap.String("action", action), zap.Int64("id", id), zap.Error(err))
	c.state.SetNotice(store.NoticeError, msg)
}

func isStatusError(err error) bool {
	var statusErr *bookingapi.StatusError
	return errors.As(err, &statusErr)
}

func isNotFound(err error) bool {
	var statusErr *bookingapi.StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}
