package http

import (
	"errors"
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/service/recon"
)

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, model.OK(data))
}

func respondErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, model.Fail(msg))
}

// respondFailure maps the protocol error taxonomy onto transport codes. The
// envelope is authoritative either way; clients key off success, not status.
func respondFailure(c echo.Context, err error) error {
	var ve *recon.ValidationError
	if errors.As(err, &ve) {
		return respondErr(c, http.StatusBadRequest, ve.Error())
	}
	var le *recon.LedgerError
	if errors.As(err, &le) {
		return respondErr(c, http.StatusBadGateway, le.Error())
	}
	var se *recon.StoreError
	if errors.As(err, &se) {
		return respondErr(c, http.StatusInternalServerError, se.Error())
	}
	return respondErr(c, http.StatusInternalServerError, err.Error())
}
