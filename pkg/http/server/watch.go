package server

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/kubeovn/console/pkg/http/websocket"
	"github.com/kubeovn/console/pkg/registry"
	"github.com/kubeovn/console/pkg/relay"
)

// WatchEvents upgrades the connection and relays change events for
// every registered kind until the client goes away or the relay fails.
// The per-call timeout does not apply here: the subscriptions are meant
// to live as long as the connection.
func (s HTTPServer) WatchEvents(w http.ResponseWriter, r *http.Request) {
	// Upgrade writes its own HTTP error response when it fails, so
	// there is nothing left to send; just log it.
	ws, err := websocket.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Log("component", "watch", "err", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends application data; a read error is the
	// signal that it has disconnected.
	go func() {
		defer cancel()
		buf := make([]byte, 512)
		for {
			if _, err := ws.Read(buf); err != nil {
				return
			}
		}
	}()

	rel := relay.New(s.client, registry.Plurals(), s.logger)
	if err := rel.Run(ctx, ws); err != nil && ctx.Err() == nil && !websocket.IsExpectedWSCloseError(errors.Cause(err)) {
		s.logger.Log("component", "watch", "err", err)
	}
}
