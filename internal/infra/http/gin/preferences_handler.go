package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	prefsapp "lynx/internal/app/handlers/preferences"
	"lynx/internal/app/queries"
	domainpreferences "lynx/internal/domain/preferences"
)

type PreferencesHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h PreferencesHandler) Favorites(c *gin.Context) {
	result, err := queries.Ask[prefsapp.GetFavoritesQuery, dto.Favorites](c.Request.Context(), h.Queries, prefsapp.GetFavoritesQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type saveFavoritesRequest struct {
	Keys []string `json:"keys"`
}

func (h PreferencesHandler) SaveFavorites(c *gin.Context) {
	var req saveFavoritesRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	cmd := prefsapp.SaveFavoritesCommand{Keys: req.Keys}
	result, err := commands.Dispatch[prefsapp.SaveFavoritesCommand, dto.Favorites](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PreferencesHandler) Graphs(c *gin.Context) {
	result, err := queries.Ask[prefsapp.GetGraphsQuery, dto.Graphs](c.Request.Context(), h.Queries, prefsapp.GetGraphsQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type saveGraphsRequest struct {
	Items []domainpreferences.Graph `json:"items"`
}

func (h PreferencesHandler) SaveGraphs(c *gin.Context) {
	var req saveGraphsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	cmd := prefsapp.SaveGraphsCommand{Graphs: req.Items}
	result, err := commands.Dispatch[prefsapp.SaveGraphsCommand, dto.Graphs](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PreferencesHTTP = PreferencesHandler{}
