package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type echoValidator func(i any) error

func (v echoValidator) Validate(i any) error {
	if err := v(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
