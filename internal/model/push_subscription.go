package model

import "time"

// PushSubscription holds the information for a browser push subscription
// registered by an operator to receive mutation notices.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	P256DH    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}
