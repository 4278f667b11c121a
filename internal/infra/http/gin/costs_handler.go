package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	costsapp "lynx/internal/app/handlers/costs"
	"lynx/internal/app/queries"
	domaincosts "lynx/internal/domain/costs"
)

type CostsHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h CostsHandler) MonthlyCosts(c *gin.Context) {
	result, err := queries.Ask[costsapp.GetMonthlyCostsQuery, dto.MonthlyCosts](c.Request.Context(), h.Queries, costsapp.GetMonthlyCostsQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CostsHandler) ReplaceMonthlyCosts(c *gin.Context) {
	var req dto.MonthlyCosts
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	cmd := costsapp.ReplaceMonthlyCostsCommand{Sheet: req}
	result, err := commands.Dispatch[costsapp.ReplaceMonthlyCostsCommand, dto.MonthlyCosts](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CostsHandler) Consumables(c *gin.Context) {
	result, err := queries.Ask[costsapp.GetConsumablesQuery, dto.Consumables](c.Request.Context(), h.Queries, costsapp.GetConsumablesQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type replaceConsumablesRequest struct {
	Items []domaincosts.ConsumableItem `json:"items"`
}

func (h CostsHandler) ReplaceConsumables(c *gin.Context) {
	var req replaceConsumablesRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	cmd := costsapp.ReplaceConsumablesCommand{Items: req.Items}
	result, err := commands.Dispatch[costsapp.ReplaceConsumablesCommand, dto.Consumables](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CostsHandler) ConsumablesTotal(c *gin.Context) {
	result, err := queries.Ask[costsapp.ConsumablesTotalQuery, dto.ConsumablesTotal](c.Request.Context(), h.Queries, costsapp.ConsumablesTotalQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CostsHTTP = CostsHandler{}
