package kubeovn

import (
	"context"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/watch"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	consoleerr "github.com/kubeovn/console/pkg/errors"
	"github.com/kubeovn/console/pkg/registry"
)

// FakeCluster returns a Cluster backed by the fake dynamic client, with
// list kinds registered for every served resource.
func FakeCluster() *Cluster {
	listKinds := map[schema.GroupVersionResource]string{}
	for _, r := range registry.Resources {
		listKinds[registry.GroupVersionResource(r.Plural)] = r.Kind + "List"
	}
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds)
	return NewCluster(client, log.NewNopLogger())
}

func manifest(plural, name string, spec map[string]interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": registry.APIVersion(),
		"kind":       registry.SingularKindName(plural),
		"metadata":   map[string]interface{}{"name": name},
		"spec":       spec,
	}}
}

func TestCreateThenGet(t *testing.T) {
	c := FakeCluster()
	ctx := context.Background()

	created, err := c.Create(ctx, "subnets", manifest("subnets", "s1", map[string]interface{}{"cidrBlock": "10.0.0.0/24"}))
	require.NoError(t, err)
	assert.Equal(t, "Subnet", created.GetKind())

	got, err := c.Get(ctx, "subnets", "s1")
	require.NoError(t, err)
	spec, _, err := unstructured.NestedMap(got.Object, "spec")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", spec["cidrBlock"])
}

func TestCreateConflict(t *testing.T) {
	c := FakeCluster()
	ctx := context.Background()

	_, err := c.Create(ctx, "vpcs", manifest("vpcs", "v1", nil))
	require.NoError(t, err)

	_, err = c.Create(ctx, "vpcs", manifest("vpcs", "v1", nil))
	require.Error(t, err)
	assert.True(t, consoleerr.IsConflict(err))
	assert.Contains(t, err.(*consoleerr.Error).Help, "Vpc 'v1' already exists")
}

func TestGetMissing(t *testing.T) {
	c := FakeCluster()

	_, err := c.Get(context.Background(), "vpc-nat-gateways", "gw0")
	require.Error(t, err)
	assert.True(t, consoleerr.IsMissing(err))
	assert.Contains(t, err.(*consoleerr.Error).Help, "VpcNatGateway 'gw0' not found")
}

func TestDeleteMissing(t *testing.T) {
	c := FakeCluster()

	err := c.Delete(context.Background(), "subnets", "nope")
	require.Error(t, err)
	assert.True(t, consoleerr.IsMissing(err))
}

func TestList(t *testing.T) {
	c := FakeCluster()
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		_, err := c.Create(ctx, "vlans", manifest("vlans", name, nil))
		require.NoError(t, err)
	}

	list, err := c.List(ctx, "vlans")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestWatchDeliversEvents(t *testing.T) {
	c := FakeCluster()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := c.Watch(ctx, "vips")
	require.NoError(t, err)
	defer sub.Stop()

	_, err = c.Create(ctx, "vips", manifest("vips", "vip1", nil))
	require.NoError(t, err)

	select {
	case ev := <-sub.ResultChan():
		assert.Equal(t, watch.Added, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event received")
	}
}
