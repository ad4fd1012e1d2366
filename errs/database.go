package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrTransactionFailed  = errors.New("transaction failed")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
		kind:       ErrConflict,
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewStoreError wraps a failure of the backing store. The store's own message is
// what the client sees; operation and entity only go to the logs via Details.
func NewStoreError(operation, entity string, cause error) *ApiErr {
	if cause == nil {
		cause = ErrDatabaseQuery
	}

	// Already classified further down the stack
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	kind := ErrDatabaseQuery
	if isConnectionFailure(cause) {
		kind = ErrDatabaseConnection
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        cause,
		kind:       kind,
		Field:      fmt.Sprintf("%s %s", operation, entity),
	}
}

// NewTransactionFailedError marks a failure inside a multi-statement write. The
// caller must re-list to observe the resulting state.
func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        cause,
		kind:       ErrTransactionFailed,
		Field:      operation,
	}
}

func isConnectionFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "database is closed")
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsStoreError(err error) bool {
	return errors.Is(err, ErrDatabaseQuery) || errors.Is(err, ErrDatabaseConnection) || errors.Is(err, ErrTransactionFailed)
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

func IsTransactionFailedError(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}
