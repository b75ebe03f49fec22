package http

import (
	"errors"

	consoleerr "github.com/kubeovn/console/pkg/errors"
)

// MakeInvalidResource reports a plural name the registry doesn't know.
// Raised before any control-plane call is made.
func MakeInvalidResource(plural string) *consoleerr.Error {
	return &consoleerr.Error{
		Type: consoleerr.User,
		Help: "Invalid resource type",
		Err:  errors.New("invalid resource type " + plural),
	}
}

func MakeAPINotFound(path string) *consoleerr.Error {
	return &consoleerr.Error{
		Type: consoleerr.Missing,
		Help: "The API endpoint requested is not supported by this server: " + path,
		Err:  errors.New("API endpoint not found"),
	}
}
