package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/kubeovn/console/pkg/api"
	consoleerr "github.com/kubeovn/console/pkg/errors"
	transport "github.com/kubeovn/console/pkg/http"
	"github.com/kubeovn/console/pkg/http/server"
	"github.com/kubeovn/console/pkg/kubeovn"
	"github.com/kubeovn/console/pkg/registry"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	listKinds := map[schema.GroupVersionResource]string{}
	for _, r := range registry.Resources {
		listKinds[registry.GroupVersionResource(r.Plural)] = r.Kind + "List"
	}
	cluster := kubeovn.NewCluster(dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds), log.NewNopLogger())

	handler := server.NewHandler(cluster, 10*time.Second, log.NewNopLogger(), server.NewRouter())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(http.DefaultClient, transport.NewAPIRouter(), srv.URL)
}

func TestRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateObject(ctx, "subnets", api.CreateBody{
		Name: "s1",
		Spec: map[string]interface{}{"cidrBlock": "10.0.0.0/24"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Subnet", created["kind"])

	objects, err := c.ListObjects(ctx, "subnets")
	require.NoError(t, err)
	require.Len(t, objects, 1)

	patched, err := c.PatchObject(ctx, "subnets", "s1", api.PatchBody{
		Spec: map[string]interface{}{"gateway": "10.0.0.1"},
	})
	require.NoError(t, err)
	spec := patched["spec"].(map[string]interface{})
	assert.Equal(t, "10.0.0.1", spec["gateway"])
	assert.Equal(t, "10.0.0.0/24", spec["cidrBlock"])

	msg, err := c.DeleteObject(ctx, "subnets", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Subnet 's1' deleted successfully", msg)
}

func TestListResources(t *testing.T) {
	c := newTestClient(t)

	resources, err := c.ListResources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, registry.Resources, resources)
}

func TestErrorsKeepTheirCategory(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.DeleteObject(ctx, "vpcs", "ghost")
	require.Error(t, err)
	assert.True(t, consoleerr.IsMissing(err), "expected a missing error, got %v", err)

	_, err = c.CreateObject(ctx, "vpcs", api.CreateBody{Name: "v1", Spec: map[string]interface{}{}})
	require.NoError(t, err)
	_, err = c.CreateObject(ctx, "vpcs", api.CreateBody{Name: "v1", Spec: map[string]interface{}{}})
	require.Error(t, err)
	assert.True(t, consoleerr.IsConflict(err), "expected a conflict error, got %v", err)

	_, err = c.ListObjects(ctx, "gadgets")
	require.Error(t, err)
	apiErr, ok := err.(*consoleerr.Error)
	require.True(t, ok)
	assert.Equal(t, "user", string(apiErr.Type))
	assert.Equal(t, "Invalid resource type", apiErr.Help)
}
