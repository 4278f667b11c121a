package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lynx/internal/app/commands"
)

// IdempotentCommand must be implemented by commands that want idempotency guarantees.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // should match the handler result type
}

// IdempotencyRecord is the stored outcome of a successful command.
type IdempotencyRecord struct {
	Key        string
	Command    string
	Payload    []byte
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONResultCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

var (
	errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

	// ErrIdempotencyKeyReused is returned when a key is replayed for a different command.
	ErrIdempotencyKeyReused = errors.New("middleware: idempotency key used by another command")
)

// Idempotency replays the stored result of a command already handled under the
// same key. Only successes are stored: a failed request may be retried with the
// same key. Records older than ttl are ignored; ttl <= 0 keeps them forever.
func Idempotency(store IdempotencyStore, codec ResultCodec, ttl time.Duration) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	fresh := func(rec IdempotencyRecord) bool {
		return ttl <= 0 || time.Since(rec.OccurredAt) < ttl
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return nextFn(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("idempotency lookup %s: %w", cmd.Key(), err)
			}
			if found && fresh(rec) {
				return replay(rec, idCmd, codec)
			}

			result, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := store.Save(ctx, newRecord(key, cmd.Key(), result, codec)); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}

func newRecord(key, command string, result any, codec ResultCodec) IdempotencyRecord {
	rec := IdempotencyRecord{Key: key, Command: command, OccurredAt: time.Now().UTC()}
	if result != nil {
		// An unencodable result is stored empty and replays as the zero value.
		rec.Payload, _ = codec.Encode(result)
	}
	return rec
}

func replay(rec IdempotencyRecord, cmd IdempotentCommand, codec ResultCodec) (any, error) {
	if rec.Command != "" && rec.Command != cmd.Key() {
		return nil, ErrIdempotencyKeyReused
	}
	proto := cmd.ResultPrototype()
	if proto == nil {
		return nil, errMissingPrototype
	}
	if len(rec.Payload) == 0 {
		return proto, nil
	}
	if err := codec.Decode(rec.Payload, proto); err != nil {
		return nil, fmt.Errorf("replay %s: %w", cmd.Key(), err)
	}
	return proto, nil
}
