// SPDX-License-Identifier: Apache-2.0

package irc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when an operation requires a live,
	// registered connection and there is none.
	ErrNotConnected = errors.New("irc: not connected")

	// ErrQueryInProgress is returned when a second access-list query is
	// attempted while another is still collecting replies. Callers hold
	// the query slot via QueryAccessList, so this indicates a bug.
	ErrQueryInProgress = errors.New("irc: access list query already in progress")
)

// TransientError wraps a failure caused by connection state rather than
// by the request itself. Callers may retry the operation after the
// connection recovers.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient transport error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// transient wraps err as a [TransientError]; nil stays nil.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is (or wraps) a [TransientError].
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
