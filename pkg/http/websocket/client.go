package websocket

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Dial connects to a console watch endpoint. The endpoint may use an
// http(s) scheme; it is rewritten to the websocket equivalent.
func Dial(endpoint string) (Websocket, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing endpoint %s", endpoint)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			return nil, errors.Wrapf(err, "connecting to %s (status %d)", u, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "connecting to %s", u)
	}
	return Ping(conn), nil
}
