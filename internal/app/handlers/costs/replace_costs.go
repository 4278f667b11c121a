package costs

import (
	"context"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/outbox"
	domaincosts "lynx/internal/domain/costs"
	"lynx/internal/domain/shared/money"
)

const (
	replaceMonthlyCostsKey = "costs.monthly.replace"
	replaceConsumablesKey  = "costs.consumables.replace"
)

type ReplaceMonthlyCostsCommand struct {
	Sheet dto.MonthlyCosts `validate:"-"`
}

func (c ReplaceMonthlyCostsCommand) Key() string { return replaceMonthlyCostsKey }

type ReplaceMonthlyCostsHandler struct {
	Rate    money.Rate
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   support.Clock
}

// Handle rederives the euro mirrors and totals of every month before saving.
func (h *ReplaceMonthlyCostsHandler) Handle(ctx context.Context, cmd ReplaceMonthlyCostsCommand) (dto.MonthlyCosts, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return dto.MonthlyCosts{}, err
	}
	snap, err := unit.Workbook().Load(ctx)
	if err != nil {
		return dto.MonthlyCosts{}, err
	}
	wb := snap.Workbook
	now := h.Clock.Now()
	wb.ReplaceCosts(cmd.Sheet.ToSheet(wb.Costs.Columns), h.Rate, now)
	wb.MarkSaved(now)
	if err := unit.Workbook().Save(ctx, wb); err != nil {
		return dto.MonthlyCosts{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, &wb); err != nil {
		return dto.MonthlyCosts{}, err
	}
	return dto.MonthlyCostsFromSheet(wb.Costs), nil
}

type ReplaceConsumablesCommand struct {
	Items []domaincosts.ConsumableItem `validate:"dive"`
}

func (c ReplaceConsumablesCommand) Key() string { return replaceConsumablesKey }

type ReplaceConsumablesHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   support.Clock
}

func (h *ReplaceConsumablesHandler) Handle(ctx context.Context, cmd ReplaceConsumablesCommand) (dto.Consumables, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return dto.Consumables{}, err
	}
	snap, err := unit.Workbook().Load(ctx)
	if err != nil {
		return dto.Consumables{}, err
	}
	wb := snap.Workbook
	now := h.Clock.Now()
	wb.ReplaceConsumables(cmd.Items, now)
	wb.MarkSaved(now)
	if err := unit.Workbook().Save(ctx, wb); err != nil {
		return dto.Consumables{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, &wb); err != nil {
		return dto.Consumables{}, err
	}
	return dto.Consumables{Columns: wb.Consumables.Columns, Items: wb.Consumables.Items}, nil
}

var _ commands.Handler[ReplaceMonthlyCostsCommand, dto.MonthlyCosts] = (*ReplaceMonthlyCostsHandler)(nil)
var _ commands.Handler[ReplaceConsumablesCommand, dto.Consumables] = (*ReplaceConsumablesHandler)(nil)
