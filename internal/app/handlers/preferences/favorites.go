package preferences

import (
	"context"

	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/uow"
	domainpreferences "lynx/internal/domain/preferences"
)

const (
	getFavoritesKey  = "preferences.favorites.get"
	saveFavoritesKey = "preferences.favorites.save"
	getGraphsKey     = "preferences.graphs.get"
	saveGraphsKey    = "preferences.graphs.save"
)

type GetFavoritesQuery struct{}

func (GetFavoritesQuery) Key() string { return getFavoritesKey }

type SaveFavoritesCommand struct {
	Keys []string
}

func (c SaveFavoritesCommand) Key() string { return saveFavoritesKey }

type GetGraphsQuery struct{}

func (GetGraphsQuery) Key() string { return getGraphsKey }

type SaveGraphsCommand struct {
	Graphs []domainpreferences.Graph `validate:"-"`
}

func (c SaveGraphsCommand) Key() string { return saveGraphsKey }

// Handler serves favorites and custom graphs, which share the side-state store.
type Handler struct {
	UoWFactory uow.UoWFactory
}

func (h *Handler) Favorites(ctx context.Context, _ GetFavoritesQuery) (dto.Favorites, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Favorites{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	keys, warnings, err := unit.Preferences().Favorites(execCtx)
	if err != nil {
		return dto.Favorites{}, err
	}
	return dto.Favorites{Keys: keys, Warnings: warnings}, nil
}

func (h *Handler) SaveFavorites(ctx context.Context, cmd SaveFavoritesCommand) (dto.Favorites, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return dto.Favorites{}, err
	}
	keys := domainpreferences.CleanFavorites(cmd.Keys)
	if err := unit.Preferences().SaveFavorites(ctx, keys); err != nil {
		return dto.Favorites{}, err
	}
	return dto.Favorites{Keys: keys}, nil
}

func (h *Handler) Graphs(ctx context.Context, _ GetGraphsQuery) (dto.Graphs, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Graphs{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	graphs, warnings, err := unit.Preferences().Graphs(execCtx)
	if err != nil {
		return dto.Graphs{}, err
	}
	return dto.Graphs{Items: graphs, Layouts: dto.LayoutNames(), Warnings: warnings}, nil
}

// SaveGraphs rejects the whole list when any graph is invalid.
func (h *Handler) SaveGraphs(ctx context.Context, cmd SaveGraphsCommand) (dto.Graphs, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return dto.Graphs{}, err
	}
	graphs, err := domainpreferences.CleanGraphs(cmd.Graphs)
	if err != nil {
		return dto.Graphs{}, err
	}
	if err := unit.Preferences().SaveGraphs(ctx, graphs); err != nil {
		return dto.Graphs{}, err
	}
	return dto.Graphs{Items: graphs, Layouts: dto.LayoutNames()}, nil
}
