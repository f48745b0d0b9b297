package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nlines/taild/pkg/tail"
)

const suffixYAML = ".yaml"

func (s *Server) getDB(c echo.Context) *gorm.DB {
	return s.db.WithContext(c.Request().Context())
}

func getRequiredParamFromEchoContext(c echo.Context, name string) (string, error) {
	val := c.Param(name)
	if len(val) == 0 {
		return "", badRequest(name + " is required")
	}
	return val, nil
}

func slogErrAttr(err error) slog.Attr {
	return slog.Any("err", err)
}

func bindAndValidate[T any](c echo.Context, input *T) error {
	err := c.Bind(input)
	if err != nil {
		return err
	}
	return c.Validate(input)
}

func badRequest(msg string) error {
	return &echo.HTTPError{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

func notFound(msg string) error {
	return &echo.HTTPError{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

func newHTTPError(code int, msg string) error {
	return &echo.HTTPError{
		Code:    code,
		Message: msg,
	}
}

// tailHTTPError maps engine failure kinds to HTTP statuses. Errors that are
// not engine errors pass through untouched.
func tailHTTPError(err error) error {
	var terr *tail.Error
	if !errors.As(err, &terr) {
		return err
	}
	switch terr.Kind {
	case tail.KindNotFound:
		return notFound(terr.Error())
	case tail.KindPermissionDenied:
		return newHTTPError(http.StatusForbidden, terr.Error())
	case tail.KindNotAFile, tail.KindInvalidArgument:
		return badRequest(terr.Error())
	}
	return err
}
