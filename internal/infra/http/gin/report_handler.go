package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	reportsapp "lynx/internal/app/handlers/reports"
	"lynx/internal/app/queries"
	"lynx/internal/domain/reports"
)

type ReportHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h ReportHandler) Templates(c *gin.Context) {
	result, err := queries.Ask[reportsapp.ListTemplatesQuery, dto.Templates](c.Request.Context(), h.Queries, reportsapp.ListTemplatesQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReportHandler) PutTemplate(c *gin.Context) {
	var req reports.Template
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.BuiltIn = false
	cmd := reportsapp.PutTemplateCommand{Template: req}
	result, err := commands.Dispatch[reportsapp.PutTemplateCommand, reports.Template](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReportHandler) DeleteTemplate(c *gin.Context) {
	cmd := reportsapp.DeleteTemplateCommand{Name: c.Param("name")}
	if _, err := commands.Dispatch[reportsapp.DeleteTemplateCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get assembles a report. The view query parameter is optional and falls back
// to the template's own platform filter.
func (h ReportHandler) Get(c *gin.Context) {
	spec, err := periodFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := reportsapp.GetReportQuery{
		Name:   c.Param("name"),
		Period: spec,
		View:   strings.TrimSpace(c.Query("view")),
	}
	result, err := queries.Ask[reportsapp.GetReportQuery, reports.Report](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReportHandler) Export(c *gin.Context) {
	spec, err := periodFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	cmd := reportsapp.ExportReportCommand{
		Name:            c.Param("name"),
		Period:          spec,
		View:            strings.TrimSpace(c.Query("view")),
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reportsapp.ExportReportCommand, *dto.ReportExport](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ ReportHTTP = ReportHandler{}
