package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PageSize is the number of bookings the backend returns per page.
const PageSize = 10

// Status is the lifecycle state of a booking as reported by the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Filter is the status filter of the list view.
type Filter string

// FilterAll disables status filtering.
const FilterAll Filter = "all"

// Status returns the status the filter selects, empty for FilterAll.
func (f Filter) Status() Status {
	if f == FilterAll {
		return ""
	}
	return Status(f)
}

// ServiceType is the kind of cleaning requested.
type ServiceType string

const (
	ServiceGeneral    ServiceType = "general"
	ServiceDeep       ServiceType = "deep"
	ServiceEndOfLease ServiceType = "endOfLease"
	ServiceMoveIn     ServiceType = "moveIn"
)

// Booking is the client-side projection of a backend booking record.
// It is never the source of truth and is refetched after every mutation.
type Booking struct {
	ID           int64       `json:"id"`
	FullName     string      `json:"full_name"`
	FullAddress  string      `json:"full_address"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	ServiceType  ServiceType `json:"service_type"`
	Frequency    string      `json:"frequency"`
	SelectedDate Date        `json:"selected_date"`
	TotalPrice   Price       `json:"total_price"`
	Status       Status      `json:"status"`
	CreatedAt    *time.Time  `json:"created_at,omitempty"`
}

// BookingPage is one page of the bookings list endpoint.
type BookingPage struct {
	Results []Booking `json:"results"`
	Count   int       `json:"count"`
}

// TotalPages returns ceil(count / PageSize); zero when there are no bookings.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// Date is a calendar date serialized as YYYY-MM-DD. Raw keeps the
// backend's text so unparseable values can still be shown.
type Date struct {
	Time time.Time
	Raw  string
}

const dateLayout = "2006-01-02"

// UnmarshalJSON accepts a YYYY-MM-DD string, an RFC3339 timestamp, or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("selected_date: %w", err)
	}
	d.Raw = raw
	d.Time = time.Time{}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
	} else if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = t
	}
	return nil
}

// MarshalJSON writes the date back in the backend's format.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		if d.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(d.Raw)
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

// Price is a decimal amount kept as its exact decimal text.
// The backend may send it either as a JSON number or a string.
type Price string

// UnmarshalJSON accepts numbers, numeric strings and null (treated as 0).
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = "0"
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("total_price: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			s = "0"
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("total_price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

// MarshalJSON writes the price as a JSON number when it is numeric.
func (p Price) MarshalJSON() ([]byte, error) {
	if p == "" {
		return []byte("0"), nil
	}
	if json.Valid([]byte(p)) {
		var n json.Number
		if err := json.Unmarshal([]byte(p), &n); err == nil {
			return []byte(p), nil
		}
	}
	return json.Marshal(string(p))
}
