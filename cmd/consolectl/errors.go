package main

import "errors"

type usageError struct {
	error
}

func newUsageError(msg string) error {
	return &usageError{errors.New(msg)}
}

var (
	errorWantedNoArgs = newUsageError("expected no (non-flag) arguments")
)
