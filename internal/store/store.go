package store

import (
	"sync"

	"booking-admin/internal/model"
)

// NoticeKind tells the page how to style a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message produced by a mutation.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Params are the list parameters captured when a load starts.
type Params struct {
	Filter model.Filter
	Search string
	Page   int
}

// Snapshot is an immutable copy of the view state used for rendering.
type Snapshot struct {
	Filter     model.Filter      `json:"filter"`
	Search     string            `json:"search"`
	Page       int               `json:"page"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
	Bookings   []model.Booking   `json:"bookings"`
	Count      int               `json:"count"`
	TotalPages int               `json:"total_pages"`
	Stats      *model.Statistics `json:"statistics"`
	Notice     *Notice           `json:"notice,omitempty"`
}

// ViewState holds the dashboard state of one operator session.
// All methods are safe for concurrent use.
type ViewState struct {
	mu sync.Mutex

	filter   model.Filter
	search   string
	page     int
	inflight int
	errMsg   string
	bookings []model.Booking
	count    int
	stats    *model.Statistics
	notice   *Notice

	// generation is bumped by every BeginLoad; only the newest load may apply its result.
	generation uint64
	// countStale is set while count still belongs to an earlier filter or search.
	countStale bool
}

// New returns the initial view state: all statuses, no search, page 1.
func New() *ViewState {
	return &ViewState{
		filter:   model.FilterAll,
		page:     1,
		bookings: []model.Booking{},
	}
}

// SetFilter changes the status filter and resets the page to 1.
// It reports whether anything changed.
func (s *ViewState) SetFilter(f model.Filter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == "" {
		f = model.FilterAll
	}
	if s.filter == f {
		return false
	}
	s.filter = f
	s.page = 1
	s.countStale = true
	return true
}

// SetSearch changes the search term and resets the page to 1.
func (s *ViewState) SetSearch(term string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search == term {
		return false
	}
	s.search = term
	s.page = 1
	s.countStale = true
	return true
}

// SetPage moves to page p, clamped to [1, max(totalPages, 1)]. While the
// count is stale only the lower bound applies.
func (s *ViewState) SetPage(p int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(p)
}

// NextPage advances one page unless already on the last one.
func (s *ViewState) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(s.page + 1)
}

// PrevPage goes back one page unless already on the first one.
func (s *ViewState) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(s.page - 1)
}

// ClampPage pulls the page back into range after the count shrank.
func (s *ViewState) ClampPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(s.page)
}

func (s *ViewState) setPageLocked(p int) bool {
	p = max(p, 1)
	if !s.countStale {
		p = min(p, max(model.TotalPages(s.count), 1))
	}
	if p == s.page {
		return false
	}
	s.page = p
	return true
}

// FallbackPage moves off a page the backend rejected as out of range for
// the load with generation gen. It steps back one page when the count is
// current and resets to page 1 otherwise. It reports false when the load
// was superseded or the page is already 1.
func (s *ViewState) FallbackPage(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.page <= 1 {
		return false
	}
	if s.countStale {
		s.page = 1
		return true
	}
	s.page = min(s.page-1, max(model.TotalPages(s.count), 1))
	return true
}

// BeginLoad marks a list load as in flight and returns its generation
// together with the parameters it should request.
func (s *ViewState) BeginLoad() (uint64, Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.inflight++
	return s.generation, Params{Filter: s.filter, Search: s.search, Page: s.page}
}

// EndLoad clears the in-flight mark of one load. Call it exactly once per BeginLoad.
func (s *ViewState) EndLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		s.inflight--
	}
}

// ApplyBookings replaces the loaded page and clears the error banner.
// Results of a superseded load are dropped; the return value reports whether it was applied.
func (s *ViewState) ApplyBookings(gen uint64, page *model.BookingPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.bookings = page.Results
	if s.bookings == nil {
		s.bookings = []model.Booking{}
	}
	s.count = page.Count
	s.countStale = false
	s.errMsg = ""
	return true
}

// FailLoad sets the error banner; loaded bookings are left untouched.
func (s *ViewState) FailLoad(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.errMsg = msg
	return true
}

// SetStatistics replaces the statistics snapshot.
func (s *ViewState) SetStatistics(stats *model.Statistics) {
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
}

// SetNotice records the outcome of a mutation.
func (s *ViewState) SetNotice(kind NoticeKind, text string) {
	s.mu.Lock()
	s.notice = &Notice{Kind: kind, Text: text}
	s.mu.Unlock()
}

// TakeNotice returns the pending notice and clears it.
func (s *ViewState) TakeNotice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}

// Snapshot copies the current state.
func (s *ViewState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := make([]model.Booking, len(s.bookings))
	copy(bookings, s.bookings)

	snap := Snapshot{
		Filter:     s.filter,
		Search:     s.search,
		Page:       s.page,
		Loading:    s.inflight > 0,
		Error:      s.errMsg,
		Bookings:   bookings,
		Count:      s.count,
		TotalPages: model.TotalPages(s.count),
	}
	if s.stats != nil {
		stats := *s.stats
		snap.Stats = &stats
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}
	return snap
}
