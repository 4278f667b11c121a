package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	analyticsapp "lynx/internal/app/handlers/analytics"
	"lynx/internal/app/dto"
	"lynx/internal/app/queries"
	"lynx/internal/domain/series"
)

type AnalyticsHandler struct {
	Queries queries.Bus
}

func (h AnalyticsHandler) Metrics(c *gin.Context) {
	spec, err := periodFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := viewFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := analyticsapp.GetMetricsQuery{Period: spec, View: view}
	result, err := queries.Ask[analyticsapp.GetMetricsQuery, dto.MetricSet](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AnalyticsHandler) Catalog(c *gin.Context) {
	result, err := queries.Ask[analyticsapp.CatalogQuery, []dto.CatalogSection](c.Request.Context(), h.Queries, analyticsapp.CatalogQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": result})
}

func (h AnalyticsHandler) Series(c *gin.Context) {
	kind, err := series.ParseKind(c.Param("kind"))
	if err != nil {
		writeError(c, err)
		return
	}
	spec, err := periodFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := viewFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := analyticsapp.GetSeriesQuery{Period: spec, View: view, Kind: kind}
	result, err := queries.Ask[analyticsapp.GetSeriesQuery, dto.Series](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AnalyticsHTTP = AnalyticsHandler{}
