package uow

import (
	"context"
	"errors"

	"lynx/internal/domain/preferences"
	"lynx/internal/domain/workbook"
)

// ErrUnitOfWorkMissing is returned by write handlers dispatched without the
// Transaction middleware.
var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

// UnitOfWork scopes one command: workbook writes are staged and land on Commit.
// Preference writes go straight to their store.
type UnitOfWork interface {
	Workbook() workbook.Repository
	Preferences() preferences.Store

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries. A read-only unit never takes
// the writer lock.
type TxOptions struct {
	ReadOnly bool
}

type unitKey struct{}

func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, unitKey{}, unit)
}

// FromContext returns the unit a surrounding Transaction opened, if any.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	unit, ok := ctx.Value(unitKey{}).(UnitOfWork)
	return unit, ok && unit != nil
}
