package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"lynx/internal/app/commands"
	"lynx/internal/app/queries"
)

// ErrInvalidMessage marks a command or query rejected before reaching its handler.
var ErrInvalidMessage = errors.New("middleware: invalid message")

type Validator interface {
	Validate(ctx context.Context, message any) error
}

// selfValidating messages check rules that struct tags cannot express.
type selfValidating interface {
	Validate() error
}

// StructValidator runs validator/v10 tags and then the message's own Validate.
// Domain errors returned by Validate pass through unwrapped.
type StructValidator struct {
	v *validator.Validate
}

func NewStructValidator() StructValidator {
	return StructValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (s StructValidator) Validate(_ context.Context, message any) error {
	if err := s.v.Struct(message); err != nil {
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
	}
	if sv, ok := message.(selfValidating); ok {
		return sv.Validate()
	}
	return nil
}

func Validation(v Validator) CommandMiddleware {
	if v == nil {
		panic("middleware: validator required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := v.Validate(ctx, cmd); err != nil {
				return nil, err
			}
			return nextFn(ctx, cmd)
		})
	}
}

func QueryValidation(v Validator) QueryMiddleware {
	if v == nil {
		panic("middleware: validator required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := v.Validate(ctx, q); err != nil {
				return nil, err
			}
			return nextFn(ctx, q)
		})
	}
}
