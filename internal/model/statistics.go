package model

// Statistics is the aggregate summary served by the statistics endpoint.
type Statistics struct {
	TotalBookings        int            `json:"total_bookings"`
	StatusBreakdown      map[string]int `json:"status_breakdown"`
	ServiceBreakdown     map[string]int `json:"service_breakdown,omitempty"`
	RecentBookings30Days int            `json:"recent_bookings_30_days"`
}

// CountFor returns the breakdown count for a status, 0 when absent.
func (s *Statistics) CountFor(status Status) int {
	if s == nil || s.StatusBreakdown == nil {
		return 0
	}
	return s.StatusBreakdown[string(status)]
}
