package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	consoleerr "github.com/kubeovn/console/pkg/errors"
)

// NewAPIRouter returns the console's route table. Registration order
// matters: mux tries routes in order, so the subnet and VPC NAT gateway
// routes must come before the generic {resource}/{name} routes they
// would otherwise be shadowed by.
func NewAPIRouter() *mux.Router {
	r := mux.NewRouter()

	r.NewRoute().Name(ListResources).Methods("GET").Path("/api/resources")
	r.NewRoute().Name(ListObjects).Methods("GET").Path("/api/{resource}")
	r.NewRoute().Name(CreateObject).Methods("POST").Path("/api/{resource}")

	r.NewRoute().Name(PatchSubnet).Methods("PATCH").Path("/api/subnets/{name}")
	r.NewRoute().Name(PatchVpcNatGateway).Methods("PATCH").Path("/api/vpc-nat-gateways/{name}")
	r.NewRoute().Name(PatchObject).Methods("PATCH").Path("/api/{resource}/{name}")

	r.NewRoute().Name(DeleteSubnet).Methods("DELETE").Path("/api/subnets/{name}")
	r.NewRoute().Name(DeleteVpcNatGateway).Methods("DELETE").Path("/api/vpc-nat-gateways/{name}")
	r.NewRoute().Name(DeleteObject).Methods("DELETE").Path("/api/{resource}/{name}")

	r.NewRoute().Name(WatchEvents).Methods("GET").Path("/ws")
	r.NewRoute().Name(Metrics).Methods("GET").Path("/metrics")

	return r
}

func MakeURL(endpoint string, router *mux.Router, routeName string, urlParams ...string) (*url.URL, error) {
	if len(urlParams)%2 != 0 {
		panic("urlParams must be even!")
	}

	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing endpoint %s", endpoint)
	}
	route := router.Get(routeName)
	if route == nil {
		return nil, errors.New("no route with name " + routeName)
	}
	routeURL, err := route.URLPath(urlParams...)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving route path %s", routeName)
	}

	endpointURL.Path = path.Join(endpointURL.Path, routeURL.Path)
	return endpointURL, nil
}

// WriteError emits err as a JSON body with the given status. The
// console is JSON-only; clients that want prose can read the help
// field.
func WriteError(w http.ResponseWriter, r *http.Request, code int, err error) {
	outErr, ok := err.(*consoleerr.Error)
	if !ok {
		outErr = consoleerr.CoverAllError(err)
	}
	body, encodeErr := json.Marshal(outErr)
	if encodeErr != nil {
		w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Error encoding error response: %s\n\nOriginal error: %s", encodeErr.Error(), err.Error())
		return
	}
	w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(body)
}

func JSONResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	JSONResponseCode(w, r, http.StatusOK, result)
}

func JSONResponseCode(w http.ResponseWriter, r *http.Request, code int, result interface{}) {
	body, err := json.Marshal(result)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(body)
}

// ErrorResponse maps the error taxonomy onto status codes: invalid
// requests are 400, missing objects 404, conflicts 409, and anything
// else passes through the status the control plane reported, or 500
// when there isn't one.
func ErrorResponse(w http.ResponseWriter, r *http.Request, apiError error) {
	var outErr *consoleerr.Error
	var code int
	var ok bool

	err := errors.Cause(apiError)
	if outErr, ok = err.(*consoleerr.Error); !ok {
		outErr = consoleerr.CoverAllError(apiError)
	}
	switch outErr.Type {
	case consoleerr.User:
		code = http.StatusBadRequest
	case consoleerr.Missing:
		code = http.StatusNotFound
	case consoleerr.Conflict:
		code = http.StatusConflict
	default:
		code = http.StatusInternalServerError
		if outErr.Code >= http.StatusBadRequest {
			code = outErr.Code
		}
	}
	WriteError(w, r, code, outErr)
}
