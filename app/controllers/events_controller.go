package controllers

import (
	"time"

	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/sse"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

// EventsController streams document change notifications to clients, either
// as Server-Sent Events or over a WebSocket hub. Every store save produces
// one event; clients re-fetch whatever views they care about.
type EventsController struct {
	store *store.Store
	hub   *ws.Hub
}

func NewEventsController(st *store.Store, hub *ws.Hub) *EventsController {
	return &EventsController{store: st, hub: hub}
}

// Stream is the SSE endpoint. It emits a "change" event with the current
// stats after every store save, plus a keepalive comment every 30s.
func (e *EventsController) Stream(c *ctx.Context) {
	stream := sse.New(c.W, c.R)
	if stream == nil {
		return
	}

	changes := make(chan struct{}, 8)
	unsubscribe := e.store.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default: // client is behind; it will catch up on the next event
		}
	})
	defer unsubscribe()

	stream.Send("change", e.store.Stats()) //nolint:errcheck

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-c.R.Context().Done():
			return
		case <-changes:
			if err := stream.Send("change", e.store.Stats()); err != nil || stream.IsClosed() {
				return
			}
		case <-keepalive.C:
			stream.Comment("keepalive")
			if stream.IsClosed() {
				return
			}
		}
	}
}

// Socket upgrades to a WebSocket on the change hub. Broadcasting into the
// hub is wired at boot: every store save pushes one JSON message.
func (e *EventsController) Socket(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, e.hub)
}
