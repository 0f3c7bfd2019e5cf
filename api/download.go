package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/truemediaorg/reelrelay/model"
	"github.com/truemediaorg/reelrelay/relay"

	log "github.com/sirupsen/logrus"
)

type DownloadHandler struct {
	relay *relay.Relay
}

func NewDownloadHandler(relay *relay.Relay) *DownloadHandler {
	return &DownloadHandler{relay: relay}
}

func (h *DownloadHandler) Register(e *echo.Echo) {
	e.POST("/download", h.Download)
}

// Download resolves the posted reference and streams the video back as an
// attachment. Exactly one response is written: a JSON error if anything fails
// before the first byte is sent, otherwise the video. A failure after that
// point aborts the connection so the client never mistakes a truncated file
// for a complete one.
func (h *DownloadHandler) Download(c echo.Context) error {
	logger := log.WithField("requestID", c.Response().Header().Get(echo.HeaderXRequestID))

	// Browsers posting a JSON string without headers send text/plain, so the
	// body is decoded as JSON whatever the Content-Type says.
	var req model.ResolutionRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		return writeRelayError(c, logger, h.relay.InvalidRequest(err))
	}
	ref, err := h.relay.ValidateRequest(req)
	if err != nil {
		return writeRelayError(c, logger, err)
	}
	logger = logger.WithField("reference", ref)

	ctx := c.Request().Context()
	variant, err := h.relay.Resolve(ctx, ref)
	if err != nil {
		return writeRelayError(c, logger, err)
	}
	media, err := h.relay.Open(ctx, variant)
	if err != nil {
		return writeRelayError(c, logger.WithField("mediaURL", variant.URL), err)
	}
	defer media.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, media.ContentType)
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, media.Filename))
	if media.ContentLength >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(media.ContentLength, 10))
	}
	c.Response().WriteHeader(http.StatusOK)

	written, err := io.Copy(c.Response(), media)
	logger = logger.WithField("bytes", written)
	if err != nil {
		if upstreamErr := media.Err(); upstreamErr != nil && ctx.Err() == nil {
			logger.WithError(upstreamErr).Error("media stream failed after headers were sent")
			media.Close()
			panic(http.ErrAbortHandler)
		}
		logger.WithError(err).Info("client went away mid-stream")
		return nil
	}
	logger.Info("relayed media")
	return nil
}
