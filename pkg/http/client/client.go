package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/kubeovn/console/pkg/api"
	consoleerr "github.com/kubeovn/console/pkg/errors"
	transport "github.com/kubeovn/console/pkg/http"
	"github.com/kubeovn/console/pkg/http/websocket"
	"github.com/kubeovn/console/pkg/registry"
)

// Client speaks the console's HTTP API. It reuses the server's route
// table to construct URLs, so the two cannot drift apart.
type Client struct {
	client   *http.Client
	router   *mux.Router
	endpoint string
}

func New(c *http.Client, router *mux.Router, endpoint string) *Client {
	return &Client{
		client:   c,
		router:   router,
		endpoint: endpoint,
	}
}

func (c *Client) ListResources(ctx context.Context) ([]registry.Resource, error) {
	var res []registry.Resource
	err := c.exec(ctx, "GET", transport.ListResources, nil, &res)
	return res, err
}

func (c *Client) ListObjects(ctx context.Context, resource string) ([]map[string]interface{}, error) {
	var res []map[string]interface{}
	err := c.exec(ctx, "GET", transport.ListObjects, nil, &res, "resource", resource)
	return res, err
}

func (c *Client) CreateObject(ctx context.Context, resource string, body api.CreateBody) (map[string]interface{}, error) {
	var res map[string]interface{}
	err := c.exec(ctx, "POST", transport.CreateObject, body, &res, "resource", resource)
	return res, err
}

func (c *Client) PatchObject(ctx context.Context, resource, name string, body api.PatchBody) (map[string]interface{}, error) {
	var res map[string]interface{}
	err := c.exec(ctx, "PATCH", transport.PatchObject, body, &res, "resource", resource, "name", name)
	return res, err
}

func (c *Client) DeleteObject(ctx context.Context, resource, name string) (string, error) {
	var res api.DeleteResponse
	err := c.exec(ctx, "DELETE", transport.DeleteObject, nil, &res, "resource", resource, "name", name)
	return res.Message, err
}

// WatchEvents opens the change-event stream. The caller owns the
// returned connection and should decode it as a JSON stream of
// api.Event values.
func (c *Client) WatchEvents() (websocket.Websocket, error) {
	u, err := transport.MakeURL(c.endpoint, c.router, transport.WatchEvents)
	if err != nil {
		return nil, errors.Wrap(err, "constructing watch URL")
	}
	return websocket.Dial(u.String())
}

func (c *Client) exec(ctx context.Context, method, route string, body interface{}, result interface{}, urlParams ...string) error {
	u, err := transport.MakeURL(c.endpoint, c.router, route, urlParams...)
	if err != nil {
		return errors.Wrapf(err, "constructing URL for %s", route)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding request body for %s", route)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return errors.Wrapf(err, "constructing request for %s", route)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "executing %s", route)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseError(resp)
	}
	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.Wrapf(err, "decoding response from %s", route)
		}
	}
	return nil
}

// parseError reconstructs a taxonomy error from an error response, so
// callers can distinguish not-found from conflict the same way
// server-side code does. Bodies that aren't taxonomy errors are
// reported verbatim.
func parseError(resp *http.Response) error {
	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading error response")
	}
	apiErr := &consoleerr.Error{}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Type == "" {
		return errors.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(raw))
	}
	if apiErr.Err == nil {
		apiErr.Err = errors.New(apiErr.Help)
	}
	apiErr.Code = resp.StatusCode
	return apiErr
}
