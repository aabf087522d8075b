package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Request fields are copied
// before the handler runs since fiber reuses their buffers.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		method := strings.Clone(c.Method())
		path := strings.Clone(c.Path())
		ip := strings.Clone(c.IP())

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ip),
		}
		if err != nil {
			log.Warn("request failed", append(fields, zap.Error(err))...)
			return err
		}
		log.Info("request", fields...)
		return nil
	}
}
