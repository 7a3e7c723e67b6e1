package gateway

import (
	"fmt"
	"net/http"
)

// TransportError is a network-level failure talking to the proxy:
// connection refused, DNS, timeout. Always retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response from the proxy. Only the transient
// subset is retryable.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the status is in the retryable class.
func (e *StatusError) Transient() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// AppError is a well-formed error envelope from the remote store.
// Terminal: the query itself failed, retrying cannot help.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("remote store error: %s", e.Message)
}

// NormalizeError is a success response whose body shape is not
// recognized. Terminal, never a silent empty result.
type NormalizeError struct {
	Message string
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("unrecognized gateway response: %s", e.Message)
}
