package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver recibe método, patrón de ruta, status y duración de cada petición.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// ObserveRequests registra cada petición en obs (si no es nil) y la loguea a nivel debug,
// o warn/error según el status.
func ObserveRequests(log zerolog.Logger, obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		if obs != nil {
			obs.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Debug()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return nil
	}
}
