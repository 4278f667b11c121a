package support

import (
	"context"
	"time"

	"lynx/internal/app/uow"
	"lynx/internal/domain/workbook"
)

// BeginReadOnlyUnit reuses the unit already in ctx or opens a read-only one.
// cleanup is nil when the unit was reused.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.ContextWithUnitOfWork(ctx, newUnit)
	cleanup := func() {
		_ = newUnit.Rollback(execCtx)
	}
	return newUnit, execCtx, cleanup, nil
}

// WriteUnit returns the unit the Transaction middleware opened for a command.
func WriteUnit(ctx context.Context) (uow.UnitOfWork, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	return unit, nil
}

// LoadWorkbook reads the tracker through a read-only unit.
func LoadWorkbook(ctx context.Context, factory uow.UoWFactory) (workbook.Snapshot, error) {
	unit, execCtx, cleanup, err := BeginReadOnlyUnit(ctx, factory)
	if err != nil {
		return workbook.Snapshot{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	return unit.Workbook().Load(execCtx)
}

// Clock returns the current time; handlers take one so tests can pin it.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
