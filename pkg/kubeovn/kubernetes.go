package kubeovn

import (
	"context"

	"github.com/go-kit/kit/log"
	meta_v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic"

	"github.com/kubeovn/console/pkg/registry"
)

// Cluster is a handle to the kube-ovn resources of a Kubernetes API
// server, backed by the dynamic client. (Typically, this code is
// deployed into the same cluster.)
type Cluster struct {
	client dynamic.Interface
	logger log.Logger
}

var _ Client = &Cluster{}

// NewCluster returns a Cluster for the given dynamic client.
func NewCluster(client dynamic.Interface, logger log.Logger) *Cluster {
	return &Cluster{
		client: client,
		logger: logger,
	}
}

func (c *Cluster) resource(plural string) dynamic.ResourceInterface {
	return c.client.Resource(registry.GroupVersionResource(plural))
}

func (c *Cluster) List(ctx context.Context, plural string) (*unstructured.UnstructuredList, error) {
	list, err := c.resource(plural).List(ctx, meta_v1.ListOptions{})
	if err != nil {
		return nil, classifyError(plural, "", err)
	}
	return list, nil
}

func (c *Cluster) Get(ctx context.Context, plural, name string) (*unstructured.Unstructured, error) {
	obj, err := c.resource(plural).Get(ctx, name, meta_v1.GetOptions{})
	if err != nil {
		return nil, classifyError(plural, name, err)
	}
	return obj, nil
}

func (c *Cluster) Create(ctx context.Context, plural string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	created, err := c.resource(plural).Create(ctx, obj, meta_v1.CreateOptions{})
	if err != nil {
		return nil, classifyError(plural, obj.GetName(), err)
	}
	return created, nil
}

func (c *Cluster) Update(ctx context.Context, plural string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	updated, err := c.resource(plural).Update(ctx, obj, meta_v1.UpdateOptions{})
	if err != nil {
		return nil, classifyError(plural, obj.GetName(), err)
	}
	return updated, nil
}

func (c *Cluster) Delete(ctx context.Context, plural, name string) error {
	if err := c.resource(plural).Delete(ctx, name, meta_v1.DeleteOptions{}); err != nil {
		return classifyError(plural, name, err)
	}
	return nil
}

func (c *Cluster) Watch(ctx context.Context, plural string) (watch.Interface, error) {
	sub, err := c.resource(plural).Watch(ctx, meta_v1.ListOptions{})
	if err != nil {
		return nil, classifyError(plural, "", err)
	}
	return sub, nil
}
