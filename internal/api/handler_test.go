package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"booking-admin/config"
	"booking-admin/internal/bookingapi"
	"booking-admin/internal/dashboard"
	"booking-admin/internal/model"
	"booking-admin/internal/mw"
	"booking-admin/internal/notification"
	"booking-admin/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAPI serves canned bookings and records mutations.
type stubAPI struct {
	mu      sync.Mutex
	page    *model.BookingPage
	listErr error
	queries []bookingapi.Query
	updates map[int64]model.Status
	deletes []int64
}

func (s *stubAPI) ListBookings(_ context.Context, q bookingapi.Query) (*model.BookingPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.page, nil
}

func (s *stubAPI) Statistics(context.Context) (*model.Statistics, error) {
	return &model.Statistics{
		TotalBookings:        s.page.Count,
		StatusBreakdown:      map[string]int{"pending": 4, "confirmed": 2},
		RecentBookings30Days: 6,
	}, nil
}

func (s *stubAPI) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updates == nil {
		s.updates = map[int64]model.Status{}
	}
	s.updates[id] = status
	return nil
}

func (s *stubAPI) DeleteBooking(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	return nil
}

func (s *stubAPI) BookingDetail(_ context.Context, id int64) (*model.BookingDetail, error) {
	if id != 7 {
		return nil, &bookingapi.StatusError{Endpoint: "detail", Code: http.StatusNotFound}
	}
	d := &model.BookingDetail{ID: 7, Status: model.StatusPending}
	d.CustomerInformation.Name = "Jane Doe"
	d.ServiceDetails.ServiceType = "Deep Cleaning"
	return d, nil
}

func samplePage() *model.BookingPage {
	return &model.BookingPage{
		Count: 25,
		Results: []model.Booking{
			{ID: 7, FullName: "Jane Doe", Email: "jane@example.com", ServiceType: model.ServiceDeep,
				Frequency: "weekly", TotalPrice: "189.50", Status: model.StatusPending},
			{ID: 8, FullName: "John Roe", ServiceType: "windows", Status: "on_hold"},
		},
	}
}

type testClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newTestRouter(t *testing.T, api dashboard.BookingsAPI, webpushOptions *webpush.Options) *testClient {
	t.Helper()
	sessions := mw.NewSessions(time.Minute, false, func() *dashboard.Controller {
		return dashboard.NewController(api, nil, zap.NewNop())
	})
	cfg := config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000}
	router, err := NewRouter(cfg, sessions, notification.NewRegistry(), webpushOptions, zap.NewNop())
	require.NoError(t, err)
	return &testClient{t: t, router: router}
}

func (tc *testClient) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == mw.SessionCookie {
			tc.cookie = c
		}
	}
	return w
}

func (tc *testClient) get(target string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, target, "", "")
}

func (tc *testClient) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, target, form.Encode(), "application/x-www-form-urlencoded")
}

func TestListBookings_RendersTable(t *testing.T) {
	api := &stubAPI{page: samplePage()}
	client := newTestRouter(t, api, nil)

	w := client.get("/admin/bookings")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, client.cookie, "a session cookie is issued")

	body := w.Body.String()
	assert.Contains(t, body, "#7")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "Deep Cleaning")
	assert.Contains(t, body, "$189.50")
	assert.Contains(t, body, "bg-yellow-100 text-yellow-800")
	// Unknown values fall back to the raw code and the neutral style.
	assert.Contains(t, body, "windows")
	assert.Contains(t, body, "bg-gray-100 text-gray-800")
	assert.Contains(t, body, "Page 1 of 3")
	assert.Contains(t, body, "Total Bookings")
}

func TestListBookings_EmptyAndQuery(t *testing.T) {
	api := &stubAPI{page: &model.BookingPage{Results: []model.Booking{}}}
	client := newTestRouter(t, api, nil)

	w := client.get("/admin/bookings?status=cancelled&search=" + url.QueryEscape("  o'brien "))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `colspan="9"`)
	assert.Contains(t, body, "No bookings found")
	assert.NotContains(t, body, "Page 1 of", "pager is hidden for a single page")

	require.Len(t, api.queries, 2)
	assert.Equal(t, bookingapi.Query{Page: 1}, api.queries[0])
	assert.Equal(t, bookingapi.Query{Page: 1, Status: model.StatusCancelled, Search: "o'brien"}, api.queries[1])

	w = client.get("/admin/bookings?status=archived")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = client.get("/admin/bookings?page=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookings_LoadFailureBanner(t *testing.T) {
	api := &stubAPI{
		page:    &model.BookingPage{},
		listErr: &bookingapi.StatusError{Endpoint: "list", Code: http.StatusForbidden},
	}
	client := newTestRouter(t, api, nil)

	w := client.get("/admin/bookings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load bookings. Please ensure you&#39;re logged in.")
}

func TestUpdateStatus(t *testing.T) {
	api := &stubAPI{page: samplePage()}
	client := newTestRouter(t, api, nil)
	client.get("/admin/bookings")

	w := client.postForm("/admin/bookings/7/status", url.Values{"status": {"confirmed"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/bookings", w.Header().Get("Location"))
	assert.Equal(t, model.StatusConfirmed, api.updates[7])

	// The notice is shown once.
	w = client.get("/admin/bookings")
	assert.Contains(t, w.Body.String(), "Booking status updated successfully!")
	w = client.get("/admin/bookings")
	assert.NotContains(t, w.Body.String(), "Booking status updated successfully!")

	w = client.postForm("/admin/bookings/7/status", url.Values{"status": {"archived"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = client.postForm("/admin/bookings/abc/status", url.Values{"status": {"pending"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBooking(t *testing.T) {
	api := &stubAPI{page: samplePage()}
	client := newTestRouter(t, api, nil)

	w := client.get("/admin/bookings/8/delete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure you want to delete this booking?")

	w = client.postForm("/admin/bookings/8/delete", url.Values{"confirm": {"no"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, api.deletes)

	w = client.postForm("/admin/bookings/8/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []int64{8}, api.deletes)

	w = client.get("/admin/bookings")
	assert.Contains(t, w.Body.String(), "Booking deleted successfully!")
}

func TestBookingDetail(t *testing.T) {
	client := newTestRouter(t, &stubAPI{page: samplePage()}, nil)

	w := client.get("/admin/bookings/7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking #7")
	assert.Contains(t, w.Body.String(), "Jane Doe")

	w = client.get("/admin/bookings/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetState(t *testing.T) {
	api := &stubAPI{page: samplePage()}
	client := newTestRouter(t, api, nil)

	w := client.get("/admin/api/state")
	require.Equal(t, http.StatusOK, w.Code)

	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, model.FilterAll, snap.Filter)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Len(t, snap.Bookings, 2)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 4, snap.Stats.CountFor(model.StatusPending))

	client.postForm("/admin/bookings/refresh", nil)
	assert.Len(t, api.queries, 2)
}

func TestHealthAndMetrics(t *testing.T) {
	client := newTestRouter(t, &stubAPI{page: samplePage()}, nil)

	w := client.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = client.get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booking_admin_http_requests_total")
}
