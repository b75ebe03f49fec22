// Package api holds the request and response bodies exchanged between
// the console server and its clients.
package api

// CreateBody is the payload for creating an object. The spec is opaque
// to the console; it is handed to the control plane unexamined.
type CreateBody struct {
	Name      string                 `json:"name"`
	Namespace string                 `json:"namespace,omitempty"`
	Spec      map[string]interface{} `json:"spec"`
}

// PatchBody is the payload for patching an object. Its keys are merged
// shallowly into the current spec: colliding keys are replaced
// wholesale, nested maps are not merged.
type PatchBody struct {
	Spec map[string]interface{} `json:"spec"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// Event is one change notification forwarded over the watch socket.
type Event struct {
	Resource string      `json:"resource"`
	Type     string      `json:"type"`
	Object   interface{} `json:"object"`
}
