package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func Start(addr string, cartH *handler.CartHandler) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, cartH)
	return e.Start(addr)
}
