package middleware

import (
	"context"
	"fmt"

	"lynx/internal/app/commands"
	"lynx/internal/app/outbox"
)

// OutboxFlush hands the events a command recorded to the outbox once the
// handler succeeded. It sits inside Transaction so a failed flush aborts the write.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, fmt.Errorf("flush outbox after %s: %w", cmd.Key(), err)
			}
			return res, nil
		})
	}
}
