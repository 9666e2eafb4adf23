package messages

import "nexus/internal/app"

// EventMsg carries a finished request back onto the update loop.
type EventMsg struct {
	Event app.Event
}
