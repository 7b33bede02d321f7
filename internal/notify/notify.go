// Package notify sends desktop notifications about playback.
package notify

import "time"

// Urgency levels as defined by the freedesktop notification spec.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one desktop notification.
type Notification struct {
	Summary string
	Body    string
	Icon    string // icon name or file path
	// Timeout of zero leaves expiry to the notification server.
	Timeout time.Duration
	// Replaces updates an existing notification in place when non-zero.
	Replaces uint32
	Urgency  Urgency
	// Transient notifications are kept out of the server's history.
	Transient bool
}

// Notifier delivers notifications.
type Notifier interface {
	// Notify shows n and returns the ID the server assigned to it.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }
