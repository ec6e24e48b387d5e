package bookingapi

import (
	"fmt"
	"net/url"
	"strconv"

	"booking-admin/internal/model"
)

// Query selects one page of the bookings list.
type Query struct {
	Page int
	// Status filters by booking status; empty means all statuses.
	Status model.Status
	Search string
}

// values builds the list query string. status and search are only sent when set.
func (q Query) values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bookings api %s: received status code %d", e.Endpoint, e.Code)
}

// detailResponse wraps the detailed booking payload.
type detailResponse struct {
	Success bool                `json:"success"`
	Data    model.BookingDetail `json:"data"`
}

type updateStatusRequest struct {
	Status model.Status `json:"status"`
}
