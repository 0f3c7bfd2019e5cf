package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func handleHealthcheck(c echo.Context) error {
	log.Debug("received healthcheck request")
	return c.String(http.StatusOK, "all good in the hood")
}
