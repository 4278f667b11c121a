package ginserver

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
)

// periodFromQuery reads period=all|year|month|range with year, month, start and
// end. A bare year selects that year, and a bare year with month selects the
// month.
func periodFromQuery(c *gin.Context) (period.Spec, error) {
	kind := period.Kind(strings.ToLower(strings.TrimSpace(c.Query("period"))))
	year, err := intParam(c, "year")
	if err != nil {
		return period.Spec{}, err
	}
	month, err := intParam(c, "month")
	if err != nil {
		return period.Spec{}, err
	}
	if kind == "" {
		switch {
		case year > 0 && month > 0:
			kind = period.KindMonth
		case year > 0:
			kind = period.KindYear
		default:
			kind = period.KindAll
		}
	}

	var spec period.Spec
	switch kind {
	case period.KindAll:
		spec = period.All()
	case period.KindYear:
		spec = period.Year(year)
	case period.KindMonth:
		spec = period.Month(year, month)
	case period.KindRange:
		start, err := dayParam(c, "start")
		if err != nil {
			return period.Spec{}, err
		}
		end, err := dayParam(c, "end")
		if err != nil {
			return period.Spec{}, err
		}
		if start.IsZero() || end.IsZero() {
			return period.Spec{}, fmt.Errorf("%w: start and end are required", period.ErrInvalidPeriod)
		}
		spec = period.Range(start, end)
	default:
		spec = period.Spec{Kind: kind}
	}
	if err := spec.Validate(); err != nil {
		return period.Spec{}, err
	}
	return spec, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", period.ErrInvalidPeriod, name, raw)
	}
	return v, nil
}

func dayParam(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not YYYY-MM-DD", period.ErrInvalidPeriod, name, raw)
	}
	return t, nil
}

func viewFromQuery(c *gin.Context) (metrics.View, error) {
	return metrics.ParseView(strings.TrimSpace(c.Query("view")))
}

// bindJSON decodes the body and marks decode failures as bad requests.
func bindJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
