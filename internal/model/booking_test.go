package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		count    int
		expected int
	}{
		{count: 0, expected: 0},
		{count: 1, expected: 1},
		{count: 10, expected: 1},
		{count: 11, expected: 2},
		{count: 25, expected: 3},
		{count: 100, expected: 10},
		{count: -3, expected: 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, TotalPages(tc.count), "count=%d", tc.count)
	}
}

func TestBookingPage_Decode(t *testing.T) {
	body := `{
		"count": 2,
		"results": [
			{"id": 7, "full_name": "Jane Doe", "full_address": "1/2 Main St, Carlton, 3053",
			 "email": "jane@example.com", "phone": "0400000000", "service_type": "deep",
			 "frequency": "weekly", "selected_date": "2025-03-14", "total_price": 189.5,
			 "status": "pending", "created_at": "2025-03-01T10:00:00Z"},
			{"id": 8, "full_name": "John Roe", "service_type": "windows",
			 "frequency": "once", "selected_date": "someday", "total_price": "240.00",
			 "status": "on_hold"}
		]
	}`

	var page BookingPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	require.Len(t, page.Results, 2)
	assert.Equal(t, 2, page.Count)

	first := page.Results[0]
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, ServiceDeep, first.ServiceType)
	assert.Equal(t, Price("189.5"), first.TotalPrice)
	assert.Equal(t, 2025, first.SelectedDate.Time.Year())
	assert.Equal(t, StatusPending, first.Status)
	require.NotNil(t, first.CreatedAt)

	// Unknown enum values and unparseable dates decode without error.
	second := page.Results[1]
	assert.Equal(t, ServiceType("windows"), second.ServiceType)
	assert.Equal(t, Status("on_hold"), second.Status)
	assert.False(t, second.Status.Valid())
	assert.True(t, second.SelectedDate.Time.IsZero())
	assert.Equal(t, "someday", second.SelectedDate.Raw)
	assert.Equal(t, Price("240.00"), second.TotalPrice)
}

func TestPrice_Null(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"total_price": null}`), &b))
	assert.Equal(t, Price("0"), b.TotalPrice)

	out, err := json.Marshal(Price("12.50"))
	require.NoError(t, err)
	assert.Equal(t, "12.50", string(out))
}

func TestStatistics_CountFor(t *testing.T) {
	var nilStats *Statistics
	assert.Equal(t, 0, nilStats.CountFor(StatusPending))

	stats := &Statistics{StatusBreakdown: map[string]int{"pending": 4}}
	assert.Equal(t, 4, stats.CountFor(StatusPending))
	assert.Equal(t, 0, stats.CountFor(StatusConfirmed))
}
