package client

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	MsgFetchEntries = "Failed to fetch entries"
	MsgFetchEntry   = "Failed to fetch entry"
	MsgCreateEntry  = "Failed to create entry"
	MsgUpdateEntry  = "Failed to update entry"
	MsgDeleteEntry  = "Failed to delete entry"
)

// TransportError is the single failure kind of the repository client.
type TransportError struct {
	Message string
	// Status is the HTTP status code, 0 if the request never got a response.
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the server answered 404.
func (e *TransportError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Detail renders the message together with status and cause, for logs.
func (e *TransportError) Detail() string {
	switch {
	case e.Status != 0 && e.Cause != nil:
		return fmt.Sprintf("%s (status %d, %s): %v", e.Message, e.Status, e.Range(), e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d, %s)", e.Message, e.Status, e.Range())
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Range classifies Status. Network failures are StatusUnknown.
func (e *TransportError) Range() StatusCodeRange {
	return statusCodeRange(e.Status)
}

// IsNotFound reports whether err is a TransportError for a 404 response.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.NotFound()
}
