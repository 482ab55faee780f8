package server

import (
	"app/internal/config"
	"app/internal/logging"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Newはルーティング済みのechoを組み立てる。
func New(cfg config.Config, log zerolog.Logger, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(log))

	RegisterRoutes(e, cfg, h, userRepo)
	return e
}

// Startはブロックする。
func Start(e *echo.Echo, port string) error {
	if port == "" || port[0] != ':' {
		port = ":" + port
	}
	return e.Start(port)
}
