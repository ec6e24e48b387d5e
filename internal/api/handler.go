package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"booking-admin/internal/notification"
)

// Handler holds shared dependencies for the dashboard handlers.
// The per-operator controller is resolved by the session middleware.
type Handler struct {
	registry *notification.Registry
	webpush  *webpush.Options
	log      *zap.Logger
}

// NewHandler creates a new handler. webpushOptions may be nil when push is disabled.
func NewHandler(registry *notification.Registry, webpushOptions *webpush.Options, log *zap.Logger) *Handler {
	if registry == nil {
		registry = notification.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		webpush:  webpushOptions,
		log:      log,
	}
}
