package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/truemediaorg/reelrelay/provider"
	"github.com/truemediaorg/reelrelay/relay"

	log "github.com/sirupsen/logrus"
)

const statusError = "error"

// Same envelope the web client already understands for failed downloads.
type errorResponse struct {
	Data    string `json:"data"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeRelayError logs the full failure for operators and sends the caller
// only the generic message for its kind.
func writeRelayError(c echo.Context, logger *log.Entry, err error) error {
	var relayErr *relay.Error
	if !errors.As(err, &relayErr) {
		logger.WithError(err).Error("unexpected relay failure")
		return c.JSON(http.StatusInternalServerError, errorResponse{Status: statusError, Message: http.StatusText(http.StatusInternalServerError)})
	}

	entry := logger.WithField("kind", relayErr.Kind).WithError(relayErr.Err)
	var httpErr *provider.HTTPError
	var malformedErr *provider.MalformedBodyError
	switch {
	case errors.As(err, &httpErr):
		entry = entry.WithField("upstreamStatus", httpErr.StatusCode).WithField("upstreamBody", httpErr.Body)
	case errors.As(err, &malformedErr):
		entry = entry.WithField("upstreamBody", malformedErr.Body)
	}
	if relayErr.Kind.StatusCode() >= http.StatusInternalServerError {
		entry.Error("relay failed")
	} else {
		entry.Warn("relay rejected request")
	}

	return c.JSON(relayErr.Kind.StatusCode(), errorResponse{
		Data:    "",
		Status:  statusError,
		Message: relayErr.Kind.Message(),
	})
}

// Keeps routing errors (404, 405, panics) in the same envelope as relay errors.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = http.StatusText(code)
	}
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("unhandled server error")
	}
	if err := c.JSON(code, errorResponse{Status: statusError, Message: message}); err != nil {
		log.WithError(err).Warn("failed to write error response")
	}
}
