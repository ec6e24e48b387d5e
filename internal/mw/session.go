package mw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"booking-admin/internal/dashboard"
	"booking-admin/internal/metrics"
)

// SessionCookie carries the operator session id.
const SessionCookie = "booking_admin_session"

const controllerKey = "dashboard.controller"

// Sessions maps operator session ids to their dashboard controllers.
// Idle sessions expire after the configured TTL.
type Sessions struct {
	store         *cache.Cache
	ttl           time.Duration
	secure        bool
	newController func() *dashboard.Controller
}

// NewSessions creates a session store. newController builds the controller of a new session.
func NewSessions(ttl time.Duration, secure bool, newController func() *dashboard.Controller) *Sessions {
	s := &Sessions{
		store:         cache.New(ttl, 2*ttl),
		ttl:           ttl,
		secure:        secure,
		newController: newController,
	}
	s.store.OnEvicted(func(string, interface{}) {
		metrics.ActiveSessions.Set(float64(s.store.ItemCount()))
	})
	return s
}

// Middleware resolves the session of the request, creating one when the cookie
// is missing or the session has expired.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(SessionCookie); err == nil {
			if v, found := s.store.Get(id); found {
				// Touch to extend the idle expiry, in the cache and in the browser.
				s.store.Set(id, v, cache.DefaultExpiration)
				s.setCookie(c, id)
				c.Set(controllerKey, v)
				c.Next()
				return
			}
		}

		id := uuid.NewString()
		ctrl := s.newController()
		s.store.Set(id, ctrl, cache.DefaultExpiration)
		metrics.ActiveSessions.Set(float64(s.store.ItemCount()))

		s.setCookie(c, id)
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

func (s *Sessions) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(s.ttl.Seconds()), "/", "", s.secure, true)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	return s.store.ItemCount()
}

// Controller returns the dashboard controller bound by the session middleware.
func Controller(c *gin.Context) *dashboard.Controller {
	v, ok := c.Get(controllerKey)
	if !ok {
		return nil
	}
	ctrl, _ := v.(*dashboard.Controller)
	return ctrl
}
