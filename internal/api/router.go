package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"booking-admin/config"
	"booking-admin/internal/mw"
	"booking-admin/internal/notification"
)

// NewRouter creates and configures the dashboard router.
func NewRouter(cfg config.ServerConfig, sessions *mw.Sessions, registry *notification.Registry, webpushOptions *webpush.Options, log *zap.Logger) (*gin.Engine, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger(log))
	r.Use(mw.Metrics())
	r.SetHTMLTemplate(templates)

	handler := NewHandler(registry, webpushOptions, log)

	r.GET("/healthz", Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin")
	admin.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	admin.Use(sessions.Middleware())
	{
		admin.GET("/bookings", handler.ListBookings)
		admin.POST("/bookings/refresh", handler.Refresh)
		admin.GET("/bookings/:id", handler.BookingDetail)
		admin.POST("/bookings/:id/status", handler.UpdateStatus)
		admin.GET("/bookings/:id/delete", handler.ConfirmDelete)
		admin.POST("/bookings/:id/delete", handler.DeleteBooking)

		admin.GET("/api/state", handler.GetState)
		admin.GET("/api/subscriptions", handler.GetSubscription)
		admin.PUT("/api/subscriptions", handler.PutSubscription)
		admin.DELETE("/api/subscriptions", handler.DeleteSubscription)
		admin.GET("/api/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r, nil
}
