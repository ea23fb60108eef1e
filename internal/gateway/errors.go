package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindClientError
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindClientError:
		return "client_error"
	case KindServerError:
		return "server_error"
	default:
		return "network"
	}
}

// TransportError is the only error Invoke returns. Status is set for
// ClientError and ServerError.
type TransportError struct {
	Op     string
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err carries a TransportError of one of kinds
// (any kind when none given).
func IsTransportError(err error, kinds ...ErrorKind) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if te.Kind == k {
			return true
		}
	}
	return false
}

func classifyError(op string, err error) *TransportError {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Op: op, Kind: KindTimeout, Err: err}
	}
	return &TransportError{Op: op, Kind: KindNetwork, Err: err}
}

func statusError(op string, status int, detail string) *TransportError {
	kind := KindNetwork
	switch {
	case status >= 400 && status < 500:
		kind = KindClientError
	case status >= 500:
		kind = KindServerError
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &TransportError{Op: op, Kind: kind, Status: status, Err: errors.New(detail)}
}
