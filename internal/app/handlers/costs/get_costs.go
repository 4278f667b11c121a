package costs

import (
	"context"

	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/uow"
	"lynx/internal/domain/shared/money"
)

const (
	getMonthlyCostsKey  = "costs.monthly.get"
	getConsumablesKey   = "costs.consumables.get"
	consumablesTotalKey = "costs.consumables.total"
)

type GetMonthlyCostsQuery struct{}

func (GetMonthlyCostsQuery) Key() string { return getMonthlyCostsKey }

type GetConsumablesQuery struct{}

func (GetConsumablesQuery) Key() string { return getConsumablesKey }

// ConsumablesTotalQuery asks for the restocking cost of one stay, which is also
// the default consumable cost of a new booking.
type ConsumablesTotalQuery struct{}

func (ConsumablesTotalQuery) Key() string { return consumablesTotalKey }

type Handler struct {
	UoWFactory uow.UoWFactory
	Rate       money.Rate
}

func (h *Handler) MonthlyCosts(ctx context.Context, _ GetMonthlyCostsQuery) (dto.MonthlyCosts, error) {
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.MonthlyCosts{}, err
	}
	out := dto.MonthlyCostsFromSheet(snap.Workbook.Costs)
	out.Warnings = snap.Report.Warnings()
	return out, nil
}

func (h *Handler) Consumables(ctx context.Context, _ GetConsumablesQuery) (dto.Consumables, error) {
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.Consumables{}, err
	}
	c := snap.Workbook.Consumables
	return dto.Consumables{Columns: c.Columns, Items: c.Items, Warnings: snap.Report.Warnings()}, nil
}

func (h *Handler) ConsumablesTotal(ctx context.Context, _ ConsumablesTotalQuery) (dto.ConsumablesTotal, error) {
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.ConsumablesTotal{}, err
	}
	per := snap.Workbook.Consumables.CostPerStay(h.Rate)
	return dto.ConsumablesTotal{MKD: per.MKD, EUR: per.EUR}, nil
}
