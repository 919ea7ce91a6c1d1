package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the item is not in the collection
	ErrItemNotFound = errors.New("item not found")

	// ErrStoreUnreachable indicates the remote store could not be reached
	ErrStoreUnreachable = errors.New("remote store is unreachable")

	// ErrAuthRequired indicates the operation needs an authenticated session
	ErrAuthRequired = errors.New("login required")

	// ErrAuthFailed indicates the credentials were rejected
	ErrAuthFailed = errors.New("invalid email or password")

	// ErrNotFound indicates a metadata lookup found no match
	ErrNotFound = errors.New("no metadata match")

	// ErrBusy indicates an operation of the same kind is already running
	ErrBusy = errors.New("operation already in progress")

	// ErrDemoMode indicates the operation needs live records
	ErrDemoMode = errors.New("not available while viewing local samples")

	// ErrLiveMode indicates the operation needs demo mode
	ErrLiveMode = errors.New("not available while viewing live records")

	// ErrCancelled indicates the user declined a confirmation
	ErrCancelled = errors.New("cancelled")

	// ErrMalformedResponse indicates a collaborator returned data that could not be decoded
	ErrMalformedResponse = errors.New("malformed response")
)
