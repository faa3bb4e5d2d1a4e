package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.WriteError(w, errs.NewInternalError("response too large"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to its status code. Server errors are logged with their
// full cause chain and answered with a generic body.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  http.StatusText(http.StatusInternalServerError),
			Status: "error",
		})
		return
	}

	if apiErr.IsServerError() {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
		r.writeJSON(w, apiErr.StatusCode, ErrorResponse{
			Error:  http.StatusText(apiErr.StatusCode),
			Status: "error",
		})
		return
	}

	message := apiErr.Details
	if message == "" {
		message = apiErr.Error()
	}
	if errs.IsMaxBodySizeExceededError(err) || errs.IsMalformedPayloadError(err) {
		r.logger.Info().Int("status", apiErr.StatusCode).Str("reason", apiErr.GetFullError()).Msg("request body rejected")
	}
	r.writeJSON(w, apiErr.StatusCode, ErrorResponse{
		Error:  message,
		Status: "error",
		Field:  apiErr.Field,
	})
}
