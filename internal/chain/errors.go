package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the account does not exist or has no transactions.
	ErrNotFound = errors.New("address not found or has no transactions")
	// ErrServer means the node failed; the request may succeed later.
	ErrServer = errors.New("node server error, try again later")
	// ErrNetwork means the node could not be reached.
	ErrNetwork = errors.New("network error, check the connection")
	// ErrRequest covers every other failure.
	ErrRequest = errors.New("failed to fetch transactions")
)

// FetchError describes a failed account transaction fetch.
type FetchError struct {
	Address    string
	StatusCode int
	Err        error
	cause      error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch transactions for %s: %v", e.Address, e.Err)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap exposes both the classification sentinel and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

// classifyStatus maps a non-2xx HTTP status to a sentinel error.
func classifyStatus(status int) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return ErrRequest
	}
}

// retryable reports whether a failed fetch is worth repeating.
func retryable(err error) bool {
	return errors.Is(err, ErrServer) || errors.Is(err, ErrNetwork)
}
