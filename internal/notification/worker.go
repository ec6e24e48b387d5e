package notification

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"booking-admin/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Message is the push payload shown by the operator's browser.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// WorkerPool delivers mutation notices to every registered subscription.
type WorkerPool struct {
	size     int
	jobs     chan Message
	registry *Registry
	webpush  *webpush.Options
	sender   NotificationSender
	log      *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, registry *Registry, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkerPool{
		size:     size,
		jobs:     make(chan Message, size*8),
		registry: registry,
		webpush:  webpushOptions,
		sender:   &WebPushSender{},
		log:      log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.Debug("push worker started", zap.Int("worker", id))
	for {
		select {
		case msg := <-wp.jobs:
			wp.broadcast(msg)
		case <-ctx.Done():
			wp.log.Debug("push worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a message. It never blocks; when the queue is full the message is dropped.
func (wp *WorkerPool) Dispatch(msg Message) bool {
	select {
	case wp.jobs <- msg:
		return true
	default:
		wp.log.Warn("push queue full, dropping notice", zap.String("title", msg.Title))
		return false
	}
}

// Notify queues a notice for delivery.
func (wp *WorkerPool) Notify(title, body string) {
	wp.Dispatch(Message{Title: title, Body: body})
}

func (wp *WorkerPool) broadcast(msg Message) {
	subs := wp.registry.All()
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		wp.log.Error("failed to encode push payload", zap.Error(err))
		return
	}

	wp.log.Debug("sending push notices", zap.Int("subscriptions", len(subs)))
	for _, sub := range subs {
		wp.sendNotification(sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Warn("failed to send push notice", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are dropped.
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		wp.log.Info("push subscription expired, removing", zap.String("endpoint", sub.Endpoint))
		wp.registry.Delete(sub.Endpoint)
	}
}
