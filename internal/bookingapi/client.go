package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"booking-admin/config"
	"booking-admin/internal/metrics"
	"booking-admin/internal/model"
)

const defaultSessionCookieName = "sessionid"

// Client talks to the bookings REST API on behalf of the dashboard.
// Every request carries the configured session credentials.
type Client struct {
	base   *url.URL
	cfg    config.UpstreamConfig
	client *http.Client
	log    *zap.Logger
}

// NewClient creates a client for the backend described by cfg.
func NewClient(cfg config.UpstreamConfig, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base_url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream base_url %q: scheme and host are required", cfg.BaseURL)
	}
	if log == nil {
		log = zap.NewNop()
	}

	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Warn("invalid proxy URL, bookings client will not use a proxy",
				zap.String("proxy", cfg.HTTPProxy), zap.Error(err))
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	jar.SetCookies(base, sessionCookies(cfg))

	return &Client{
		base: base,
		cfg:  cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			Jar:       jar,
		},
		log: log,
	}, nil
}

// sessionCookies turns the configured credentials into cookies.
// session_cookie may be a bare value or a "name=value" pair.
func sessionCookies(cfg config.UpstreamConfig) []*http.Cookie {
	var cookies []*http.Cookie
	if cfg.SessionCookie != "" {
		name, value := defaultSessionCookieName, cfg.SessionCookie
		if k, v, ok := strings.Cut(cfg.SessionCookie, "="); ok {
			name, value = strings.TrimSpace(k), strings.TrimSpace(v)
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	if cfg.CSRFToken != "" {
		cookies = append(cookies, &http.Cookie{Name: "csrftoken", Value: cfg.CSRFToken, Path: "/"})
	}
	return cookies
}

// ListBookings fetches one page of bookings.
func (c *Client) ListBookings(ctx context.Context, q Query) (*model.BookingPage, error) {
	var page model.BookingPage
	endpoint := c.endpoint("/api/bookings/") + "?" + q.values().Encode()
	if err := c.do(ctx, "list", http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []model.Booking{}
	}
	return &page, nil
}

// Statistics fetches the aggregate booking statistics.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	if err := c.do(ctx, "statistics", http.MethodGet, c.endpoint("/api/bookings/statistics/"), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateStatus changes the status of a booking.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	endpoint := c.endpoint("/api/bookings/" + strconv.FormatInt(id, 10) + "/update_status/")
	return c.do(ctx, "update_status", http.MethodPatch, endpoint, updateStatusRequest{Status: status}, nil)
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	endpoint := c.endpoint("/api/bookings/" + strconv.FormatInt(id, 10) + "/")
	return c.do(ctx, "delete", http.MethodDelete, endpoint, nil, nil)
}

// BookingDetail fetches the structured detail view of one booking.
func (c *Client) BookingDetail(ctx context.Context, id int64) (*model.BookingDetail, error) {
	var resp detailResponse
	endpoint := c.endpoint("/api/bookings/" + strconv.FormatInt(id, 10) + "/detailed/")
	if err := c.do(ctx, "detail", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

// do sends one request and decodes a JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, name, method, endpoint string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		metrics.UpstreamRequestsTotal.WithLabelValues(name, outcome(err)).Inc()
		c.log.Debug("bookings api request",
			zap.String("endpoint", name),
			zap.String("method", method),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
	}()

	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.addHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: name, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", name, err)
	}
	return nil
}

func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}
	if req.Method != http.MethodGet && c.cfg.CSRFToken != "" {
		req.Header.Set("X-CSRFToken", c.cfg.CSRFToken)
		req.Header.Set("Referer", c.base.String()+"/")
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return "status"
	}
	return "error"
}
