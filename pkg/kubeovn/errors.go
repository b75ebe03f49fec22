package kubeovn

import (
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	consoleerr "github.com/kubeovn/console/pkg/errors"
	"github.com/kubeovn/console/pkg/registry"
)

// classifyError sorts a control-plane error into the console's error
// taxonomy, immediately at the call site. Not-found and already-exists
// get distinct categories with a message naming the kind and object;
// everything else passes through with whatever status the control plane
// reported.
func classifyError(plural, name string, err error) error {
	kind := registry.SingularKindName(plural)
	switch {
	case name != "" && apierrors.IsNotFound(err):
		return &consoleerr.Error{
			Type: consoleerr.Missing,
			Err:  err,
			Help: fmt.Sprintf("%s '%s' not found", kind, name),
		}
	case name != "" && apierrors.IsAlreadyExists(err):
		return &consoleerr.Error{
			Type: consoleerr.Conflict,
			Err:  err,
			Help: fmt.Sprintf("%s '%s' already exists", kind, name),
		}
	}
	out := &consoleerr.Error{
		Type: consoleerr.Server,
		Err:  err,
		Help: err.Error(),
	}
	if status, ok := err.(apierrors.APIStatus); ok {
		out.Code = int(status.Status().Code)
	}
	return out
}
