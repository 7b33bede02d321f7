//go:build linux

package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	busIface  = "org.freedesktop.Notifications"
	appName   = "Riffle"
	desktopID = "riffle"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus notification service.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	call := d.obj.Call(busIface+".Notify", 0,
		appName,
		n.Replaces,
		n.Icon,
		n.Summary,
		n.Body,
		[]string{},
		hints(n),
		expireTimeout(n.Timeout),
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(busIface+".CloseNotification", 0, id).Err
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopID),
	}
	if n.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

// expireTimeout converts d to the wire value in milliseconds, where -1
// means the server default.
func expireTimeout(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(min(d.Milliseconds(), int64(1<<31-1)))
}
