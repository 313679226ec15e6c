package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/kbadmin/internal/common"
)

// errorBody is the JSON error document; the console shows Message as is.
type errorBody struct {
	Message string `json:"message"`
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Malformed request body").SetInternal(err)
}

// statusOf maps an error to the response status and message.
func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "Entry not found"
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, "Entry already exists"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// validationMessage strips the sentinel prefix so only the field complaint
// is shown, e.g. "status must be one of certified, training".
func validationMessage(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Unwrap(e) == common.ErrValidation {
			return strings.TrimPrefix(e.Error(), common.ErrValidation.Error()+": ")
		}
	}
	return err.Error()
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusOf(err)
	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		s.log.Error(ctx, "request failed", "error", err, "path", c.Path())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorBody{Message: msg})
	}
	if err != nil {
		s.log.Error(ctx, "write error response", "error", err)
	}
}
