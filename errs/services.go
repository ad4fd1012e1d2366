package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUpstreamFailure    = errors.New("upstream request failed")
	ErrConfigMissing      = errors.New("configuration missing")
)

// NewServiceNotConfiguredError is returned when an optional integration has no credentials.
func NewServiceNotConfiguredError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        fmt.Errorf("%s is not configured", service),
		kind:       ErrConfigMissing,
	}
}

// NewUpstreamError hides the upstream failure behind a fixed public message.
func NewUpstreamError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New(message),
		kind:       ErrUpstreamFailure,
		Cause:      cause,
	}
}

func IsServiceNotConfigured(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstreamFailure)
}
