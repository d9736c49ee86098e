package error

import (
	"movie_review/configs"
	"movie_review/pkg/logger"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// SaveError logs err (when PRINT_ERRORS is set) and reports it to sentry
// with message attached as context. A nil err is reported as a message.
func SaveError(message string, err error) {
	if configs.GetConfigs().PrintErrors {
		logger.L().Error(message, zap.Error(err))
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("service", "movie_review")
		if err == nil {
			sentry.CaptureMessage(message)
			return
		}
		scope.SetExtra("message", message)
		sentry.CaptureException(err)
	})
}
