package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reportsapp "lynx/internal/app/handlers/reports"
	"lynx/internal/app/middleware"
	"lynx/internal/domain/booking"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
	"lynx/internal/domain/series"
)

// errBadRequest marks request bodies and parameters that could not be read.
var errBadRequest = errors.New("bad request")

var statusByError = []struct {
	target error
	status int
}{
	{errBadRequest, http.StatusBadRequest},
	{booking.ErrInvalidEntry, http.StatusUnprocessableEntity},
	{middleware.ErrInvalidMessage, http.StatusUnprocessableEntity},
	{period.ErrInvalidPeriod, http.StatusUnprocessableEntity},
	{metrics.ErrUnknownView, http.StatusUnprocessableEntity},
	{series.ErrUnknownKind, http.StatusUnprocessableEntity},
	{reports.ErrInvalidTemplate, http.StatusUnprocessableEntity},
	{preferences.ErrInvalidGraph, http.StatusUnprocessableEntity},
	{booking.ErrBookingNotFound, http.StatusNotFound},
	{reports.ErrTemplateNotFound, http.StatusNotFound},
	{reports.ErrBuiltInProtected, http.StatusConflict},
	{middleware.ErrIdempotencyKeyReused, http.StatusConflict},
	{reportsapp.ErrExportDisabled, http.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, m := range statusByError {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Server errors keep their detail
// in the request log only.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	body := gin.H{"error": err.Error()}
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		body["missing"] = verr.Missing
		body["problems"] = verr.Problems
	}
	c.AbortWithStatusJSON(status, body)
}
