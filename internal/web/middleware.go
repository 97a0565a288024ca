package web

import (
	"net/http"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"

	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// ErrorHandler maps coded errors to HTTP statuses. htmx requests receive an
// error toast, everything else a JSON body.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"
	details := ""

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		switch m := e.Message.(type) {
		case string:
			message = m
		case errors.HTTPErrorResponse:
			message, details = m.Error.Message, m.Error.Details
		}
	default:
		if ae, ok := errors.As(err); ok {
			code = ae.GetHTTPStatus()
			message, details = ae.Message, ae.Details
		}
	}

	logger.GetLogger(c).WithError(err).WithField("status", code).Debug("Rendering error")

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if isHTMX(c) {
		o := dashboard.Outcome{Level: dashboard.Error, Title: message, Message: details}
		c.Response().Header().Set("HX-Reswap", "none")
		_ = c.Render(code, "outcome", outcomeView{Outcome: o})
		return
	}

	reqID, _ := c.Get("request_id").(string)
	_ = c.JSON(code, map[string]interface{}{
		"error":      message,
		"details":    details,
		"request_id": reqID,
	})
}
