package middleware

import (
	"net/http"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/sentry"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/gin-gonic/gin"
)

const defaultDisplayMessage = "An unexpected error occurred"

// ErrorHandler middleware turns the last gin error into the standard error body.
// Server side failures are logged and reported, client errors are not.
func ErrorHandler(log *logger.Logger, reporter *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request error",
				"error", err,
				"path", c.FullPath(),
				"request_id", types.GetRequestID(c.Request.Context()),
			)
			reporter.CaptureException(err)
		}

		c.AbortWithStatusJSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Code:    ierr.Code(err),
				Display: getDisplayMessage(err),
				Details: ierr.ReportableDetails(err),
			},
		})
	}
}

func getDisplayMessage(err error) string {
	if hint := ierr.DisplayMessage(err); hint != "" {
		return hint
	}
	return defaultDisplayMessage
}
