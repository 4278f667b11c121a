package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"lynx/internal/app/commands"
	"lynx/internal/app/uow"
)

type TxOptionsProvider func(cmd commands.Command) uow.TxOptions

// Transaction opens a unit of work around every command. The handler's writes
// become visible only when Commit succeeds; any error rolls them back.
func Transaction(factory uow.UoWFactory, optsProvider TxOptionsProvider, logger *slog.Logger) CommandMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			opts := uow.TxOptions{}
			if optsProvider != nil {
				opts = optsProvider(cmd)
			}
			unit, err := factory.Begin(ctx, opts)
			if err != nil {
				return nil, fmt.Errorf("begin unit of work: %w", err)
			}
			execCtx := uow.ContextWithUnitOfWork(ctx, unit)
			committed := false
			defer func() {
				if committed {
					return
				}
				if rbErr := unit.Rollback(execCtx); rbErr != nil {
					logger.ErrorContext(ctx, "rollback failed", "command", cmd.Key(), "error", rbErr)
				}
			}()

			res, err := nextFn(execCtx, cmd)
			if err != nil {
				return nil, err
			}
			if err := unit.Commit(execCtx); err != nil {
				return nil, fmt.Errorf("commit %s: %w", cmd.Key(), err)
			}
			committed = true
			return res, nil
		})
	}
}
