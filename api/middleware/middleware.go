package middleware

import (
	"context"
	"movie_review/pkg/logger"
	"movie_review/pkg/response"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dbPingTimeout = 2 * time.Second

var (
	LocalhostRegex = regexp.MustCompile(`(?i)^(https?://)?localhost(:\d{4})?$`)
)

type Pinger interface {
	Ping(ctx context.Context, timeout time.Duration) error
}

// RequireDatabase answers 503 before reaching the handler when the backing
// store does not respond.
func RequireDatabase(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.Ping(c.UserContext(), dbPingTimeout); err != nil {
			logger.L().Warn("database unreachable", zap.Error(err))
			return response.ResponseErrorWithDetails(c, response.DbConnectionFailed, err.Error(), fiber.StatusServiceUnavailable)
		}
		return c.Next()
	}
}

// ZapWriter feeds fiber's access log lines into the zap logger.
type ZapWriter struct{}

func (ZapWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if line != "" {
		logger.L().Info(line)
	}
	return len(p), nil
}
