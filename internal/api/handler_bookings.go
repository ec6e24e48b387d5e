package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-admin/internal/bookingapi"
	"booking-admin/internal/dashboard"
	"booking-admin/internal/mw"
	"booking-admin/internal/parse"
)

const bookingsPath = "/admin/bookings"

// changesFromQuery reads the list parameters present in the query string.
func changesFromQuery(c *gin.Context) (dashboard.Changes, error) {
	var ch dashboard.Changes
	if raw, ok := c.GetQuery("status"); ok {
		f, err := parse.Filter(raw)
		if err != nil {
			return ch, err
		}
		ch.Filter = &f
	}
	if raw, ok := c.GetQuery("search"); ok {
		s := parse.Search(raw)
		ch.Search = &s
	}
	if raw, ok := c.GetQuery("page"); ok {
		p, err := parse.Page(raw)
		if err != nil {
			return ch, err
		}
		ch.Page = &p
	}
	return ch, nil
}

// ListBookings handles GET /admin/bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	ctrl := mw.Controller(c)
	ctx := c.Request.Context()

	changes, err := changesFromQuery(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}

	ctrl.EnsureMounted(ctx)
	// Load failures are shown through the banner.
	_ = ctrl.Apply(ctx, changes)

	c.HTML(http.StatusOK, "bookings.html", newBookingsPage(ctrl.Snapshot(), ctrl.TakeNotice()))
}

// UpdateStatus handles POST /admin/bookings/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := parse.ID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}
	status, err := parse.Status(c.PostForm("status"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}

	// The outcome is reported through the notice on the list page.
	_ = mw.Controller(c).SetBookingStatus(c.Request.Context(), id, status)
	c.Redirect(http.StatusSeeOther, bookingsPath)
}

// ConfirmDelete handles GET /admin/bookings/:id/delete.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id, err := parse.ID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", confirmDeletePage{ID: id, Prompt: dashboard.DeletePrompt})
}

// DeleteBooking handles POST /admin/bookings/:id/delete. Only confirm=yes deletes.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := parse.ID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}

	confirmed := c.PostForm("confirm") == "yes"
	err = mw.Controller(c).DeleteBooking(c.Request.Context(), id, dashboard.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if errors.Is(err, dashboard.ErrDeleteNotConfirmed) {
		h.log.Debug("delete declined")
	}
	c.Redirect(http.StatusSeeOther, bookingsPath)
}

// BookingDetail handles GET /admin/bookings/:id.
func (h *Handler) BookingDetail(c *gin.Context) {
	id, err := parse.ID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", errorPage{Message: err.Error()})
		return
	}

	detail, err := mw.Controller(c).BookingDetail(c.Request.Context(), id)
	if err != nil {
		var statusErr *bookingapi.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			c.HTML(http.StatusNotFound, "error.html", errorPage{Message: "Booking not found"})
			return
		}
		c.HTML(http.StatusBadGateway, "error.html", errorPage{Message: "Failed to load booking details"})
		return
	}
	c.HTML(http.StatusOK, "detail.html", detailPage{Detail: detail})
}

// Refresh handles POST /admin/bookings/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	mw.Controller(c).Refresh(c.Request.Context())
	c.Redirect(http.StatusSeeOther, bookingsPath)
}

// GetState handles GET /admin/api/state and returns the view state as JSON.
// The pending notice is included but not consumed.
func (h *Handler) GetState(c *gin.Context) {
	ctrl := mw.Controller(c)
	ctrl.EnsureMounted(c.Request.Context())
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
