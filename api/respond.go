package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

const maxJSONBodyBytes = 1 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// successResponse is the envelope of every successful entity route
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.WriteError(w, errs.NewApiErr(http.StatusInternalServerError, "Response too large"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess writes {"success":true}
func (r Responder) WriteSuccess(w http.ResponseWriter) {
	r.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// WriteData writes {"success":true,"data":data}
func (r Responder) WriteData(w http.ResponseWriter, data any) {
	r.WriteJSON(w, http.StatusOK, successResponse{Success: true, Data: data})
}

// WriteError writes {"error":message}. Errors that are not *errs.ApiErr are
// reported with status 500 and their message as is.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("cause", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
	}
	r.WriteJSON(w, apiErr.StatusCode, errorResponse{Error: apiErr.Error()})
}

// decodeJSON reads a JSON body of at most maxJSONBodyBytes into dst. Unknown
// fields are ignored.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	if ct := req.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return errs.NewUnsupportedMediaTypeError(ct, []string{"application/json"})
	}

	body := http.MaxBytesReader(w, req.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxJSONBodyBytes)
		case errors.Is(err, io.EOF):
			return errs.NewInvalidJSONError(errors.New("empty body"))
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	return nil
}

// wrapDatabaseError wraps a store error so its message reaches the client unchanged
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewStoreError(operation, entity, cause)
}
