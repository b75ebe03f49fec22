// Package kubeovn is the console's handle to the kube-ovn custom
// resources in the control plane. The console holds no state of its
// own; every operation here is a direct call against the cluster API.
package kubeovn

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/watch"
)

// Client is the narrow surface of the control-plane API the console
// uses. Resources are addressed by their plural name ("subnets"); all
// served kinds are cluster-scoped. Implementations must be safe for
// concurrent use.
type Client interface {
	// List returns every object of the given kind.
	List(ctx context.Context, plural string) (*unstructured.UnstructuredList, error)
	// Get returns the named object.
	Get(ctx context.Context, plural, name string) (*unstructured.Unstructured, error)
	// Create submits a new object and returns it as stored.
	Create(ctx context.Context, plural string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
	// Update replaces an existing object and returns it as stored.
	Update(ctx context.Context, plural string, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
	// Delete removes the named object.
	Delete(ctx context.Context, plural, name string) error
	// Watch opens a change-event subscription for the given kind. The
	// subscription is released when ctx is cancelled or Stop is called.
	Watch(ctx context.Context, plural string) (watch.Interface, error)
}
