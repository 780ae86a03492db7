// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrStorage indicates that the durable store failed or aborted the transaction.
	// The operation had no effect and may be retried.
	ErrStorage = errors.New("storage failure, retry later")
)
