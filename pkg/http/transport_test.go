package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consoleerr "github.com/kubeovn/console/pkg/errors"
)

func matchedRoute(t *testing.T, r *mux.Router, method, path string) string {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	var m mux.RouteMatch
	require.True(t, r.Match(req, &m), "%s %s did not match any route", method, path)
	return m.Route.GetName()
}

// Both the kind-specific and the generic routes can match the same
// path; registration order must make the specific one win.
func TestSpecificRoutesWinOverGeneric(t *testing.T) {
	r := NewAPIRouter()

	for path, want := range map[string]string{
		"/api/subnets/s1":           PatchSubnet,
		"/api/vpc-nat-gateways/gw1": PatchVpcNatGateway,
		"/api/vips/v1":              PatchObject,
	} {
		assert.Equal(t, want, matchedRoute(t, r, "PATCH", path))
	}

	for path, want := range map[string]string{
		"/api/subnets/s1":           DeleteSubnet,
		"/api/vpc-nat-gateways/gw1": DeleteVpcNatGateway,
		"/api/vlans/vl1":            DeleteObject,
	} {
		assert.Equal(t, want, matchedRoute(t, r, "DELETE", path))
	}
}

func TestRouteShapes(t *testing.T) {
	r := NewAPIRouter()

	assert.Equal(t, ListResources, matchedRoute(t, r, "GET", "/api/resources"))
	assert.Equal(t, ListObjects, matchedRoute(t, r, "GET", "/api/subnets"))
	assert.Equal(t, CreateObject, matchedRoute(t, r, "POST", "/api/subnets"))
	assert.Equal(t, WatchEvents, matchedRoute(t, r, "GET", "/ws"))
	assert.Equal(t, Metrics, matchedRoute(t, r, "GET", "/metrics"))
}

func TestErrorResponseStatusCodes(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		code int
	}{
		{"invalid resource", MakeInvalidResource("gadgets"), http.StatusBadRequest},
		{"missing", &consoleerr.Error{Type: consoleerr.Missing, Err: errors.New("nope"), Help: "not found"}, http.StatusNotFound},
		{"conflict", &consoleerr.Error{Type: consoleerr.Conflict, Err: errors.New("dup"), Help: "exists"}, http.StatusConflict},
		{"remote code passes through", &consoleerr.Error{Type: consoleerr.Server, Err: errors.New("denied"), Help: "denied", Code: http.StatusForbidden}, http.StatusForbidden},
		{"uncategorised server error", &consoleerr.Error{Type: consoleerr.Server, Err: errors.New("boom"), Help: "boom"}, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped taxonomy error", errors.Wrap(&consoleerr.Error{Type: consoleerr.Missing, Err: errors.New("nope"), Help: "not found"}, "getting object"), http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/subnets", nil)
			ErrorResponse(rec, req, tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
