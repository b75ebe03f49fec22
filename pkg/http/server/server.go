package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weaveworks/common/middleware"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeovn/console/pkg/api"
	consoleerr "github.com/kubeovn/console/pkg/errors"
	transport "github.com/kubeovn/console/pkg/http"
	"github.com/kubeovn/console/pkg/kubeovn"
	consolemetrics "github.com/kubeovn/console/pkg/metrics"
	"github.com/kubeovn/console/pkg/registry"
)

var (
	requestDuration = promauto.NewHistogramVec(stdprometheus.HistogramOpts{
		Namespace: "console",
		Name:      "request_duration_seconds",
		Help:      "Time (in seconds) spent serving HTTP requests.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{consolemetrics.LabelMethod, consolemetrics.LabelRoute, "status_code", "ws"})
)

// An API server for the console
func NewRouter() *mux.Router {
	r := transport.NewAPIRouter()

	// We assume every request that doesn't match a route is a client
	// calling an old or hitherto unsupported API.
	r.NewRoute().Name("NotFound").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, r, http.StatusNotFound, transport.MakeAPINotFound(r.URL.Path))
	})

	return r
}

func NewHandler(client kubeovn.Client, timeout time.Duration, logger log.Logger, r *mux.Router) http.Handler {
	handle := HTTPServer{client: client, timeout: timeout, logger: logger}

	r.Get(transport.ListResources).HandlerFunc(handle.ListResources)
	r.Get(transport.ListObjects).HandlerFunc(handle.ListObjects)
	r.Get(transport.CreateObject).HandlerFunc(handle.CreateObject)

	r.Get(transport.PatchSubnet).HandlerFunc(handle.PatchSubnet)
	r.Get(transport.PatchVpcNatGateway).HandlerFunc(handle.PatchVpcNatGateway)
	r.Get(transport.PatchObject).HandlerFunc(handle.PatchObject)

	r.Get(transport.DeleteSubnet).HandlerFunc(handle.DeleteSubnet)
	r.Get(transport.DeleteVpcNatGateway).HandlerFunc(handle.DeleteVpcNatGateway)
	r.Get(transport.DeleteObject).HandlerFunc(handle.DeleteObject)

	r.Get(transport.WatchEvents).HandlerFunc(handle.WatchEvents)
	r.Get(transport.Metrics).Handler(promhttp.Handler())

	var h http.Handler = middleware.Instrument{
		RouteMatcher: r,
		Duration:     requestDuration,
	}.Wrap(r)
	h = transport.Logging(h, logger)
	h = transport.CORS(h)
	return h
}

// HTTPServer translates the console's HTTP surface into control-plane
// calls. It holds no state beyond its dependencies; every request is
// handled independently.
type HTTPServer struct {
	client  kubeovn.Client
	timeout time.Duration
	logger  log.Logger
}

// callContext bounds each control-plane call so a hung remote doesn't
// pin the request forever.
func (s HTTPServer) callContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), s.timeout)
}

func (s HTTPServer) ListResources(w http.ResponseWriter, r *http.Request) {
	transport.JSONResponse(w, r, registry.Resources)
}

func (s HTTPServer) ListObjects(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	if !registry.IsKnown(resource) {
		transport.ErrorResponse(w, r, transport.MakeInvalidResource(resource))
		return
	}

	ctx, cancel := s.callContext(r)
	defer cancel()

	list, err := s.client.List(ctx, resource)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, list.Items)
}

func (s HTTPServer) CreateObject(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	if !registry.IsKnown(resource) {
		transport.ErrorResponse(w, r, transport.MakeInvalidResource(resource))
		return
	}

	var body api.CreateBody
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		transport.WriteError(w, r, http.StatusBadRequest, err)
		return
	}
	if body.Name == "" {
		transport.ErrorResponse(w, r, &consoleerr.Error{
			Type: consoleerr.User,
			Help: "name is required",
			Err:  fmt.Errorf("create request for %s without a name", resource),
		})
		return
	}
	if body.Spec == nil {
		transport.ErrorResponse(w, r, &consoleerr.Error{
			Type: consoleerr.User,
			Help: "spec is required",
			Err:  fmt.Errorf("create request for %s without a spec", resource),
		})
		return
	}

	metadata := map[string]interface{}{"name": body.Name}
	if body.Namespace != "" {
		metadata["namespace"] = body.Namespace
	}
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": registry.APIVersion(),
		"kind":       registry.SingularKindName(resource),
		"metadata":   metadata,
		"spec":       body.Spec,
	}}

	ctx, cancel := s.callContext(r)
	defer cancel()

	created, err := s.client.Create(ctx, resource, obj)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponseCode(w, r, http.StatusCreated, created.Object)
}

func (s HTTPServer) PatchSubnet(w http.ResponseWriter, r *http.Request) {
	s.patchObject(w, r, "subnets", mux.Vars(r)["name"])
}

func (s HTTPServer) PatchVpcNatGateway(w http.ResponseWriter, r *http.Request) {
	s.patchObject(w, r, "vpc-nat-gateways", mux.Vars(r)["name"])
}

func (s HTTPServer) PatchObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resource := vars["resource"]
	if !registry.IsKnown(resource) {
		transport.ErrorResponse(w, r, transport.MakeInvalidResource(resource))
		return
	}
	s.patchObject(w, r, resource, vars["name"])
}

// patchObject merges the posted spec into the current one key by key --
// colliding keys are replaced wholesale, nested maps are not recursed
// into -- and submits the result as an update.
func (s HTTPServer) patchObject(w http.ResponseWriter, r *http.Request, resource, name string) {
	var body api.PatchBody
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		transport.WriteError(w, r, http.StatusBadRequest, err)
		return
	}
	if body.Spec == nil {
		transport.ErrorResponse(w, r, &consoleerr.Error{
			Type: consoleerr.User,
			Help: "spec is required",
			Err:  fmt.Errorf("patch request for %s '%s' without a spec", resource, name),
		})
		return
	}

	ctx, cancel := s.callContext(r)
	defer cancel()

	current, err := s.client.Get(ctx, resource, name)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}

	spec, _, err := unstructured.NestedMap(current.Object, "spec")
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	if spec == nil {
		spec = map[string]interface{}{}
	}
	for k, v := range body.Spec {
		spec[k] = v
	}
	if err := unstructured.SetNestedMap(current.Object, spec, "spec"); err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}

	updated, err := s.client.Update(ctx, resource, current)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, updated.Object)
}

func (s HTTPServer) DeleteSubnet(w http.ResponseWriter, r *http.Request) {
	s.deleteObject(w, r, "subnets", mux.Vars(r)["name"])
}

func (s HTTPServer) DeleteVpcNatGateway(w http.ResponseWriter, r *http.Request) {
	s.deleteObject(w, r, "vpc-nat-gateways", mux.Vars(r)["name"])
}

func (s HTTPServer) DeleteObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resource := vars["resource"]
	if !registry.IsKnown(resource) {
		transport.ErrorResponse(w, r, transport.MakeInvalidResource(resource))
		return
	}
	s.deleteObject(w, r, resource, vars["name"])
}

// deleteObject reads the object first so a missing name is reported as
// not-found rather than whatever the delete call would say.
func (s HTTPServer) deleteObject(w http.ResponseWriter, r *http.Request, resource, name string) {
	ctx, cancel := s.callContext(r)
	defer cancel()

	if _, err := s.client.Get(ctx, resource, name); err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	if err := s.client.Delete(ctx, resource, name); err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, api.DeleteResponse{
		Message: fmt.Sprintf("%s '%s' deleted successfully", registry.SingularKindName(resource), name),
	})
}
