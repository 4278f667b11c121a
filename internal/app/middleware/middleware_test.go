package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/app/commands"
	"lynx/internal/app/outbox"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	"lynx/internal/domain/preferences"
	"lynx/internal/domain/workbook"
)

type pingCommand struct {
	Name    string `validate:"required"`
	IdemKey string
}

func (c pingCommand) Key() string            { return "test.ping" }
func (c pingCommand) IdempotencyKey() string { return c.IdemKey }
func (c pingCommand) ResultPrototype() any   { return &pingResult{} }

type pongCommand struct {
	IdemKey string
}

func (c pongCommand) Key() string            { return "test.pong" }
func (c pongCommand) IdempotencyKey() string { return c.IdemKey }
func (c pongCommand) ResultPrototype() any   { return &pingResult{} }

type pingResult struct {
	Echo  string `json:"echo"`
	Calls int    `json:"calls"`
}

type pingQuery struct {
	Limit int `validate:"gte=0"`
}

func (pingQuery) Key() string { return "test.ping" }

type fakeUnit struct {
	committed, rolledBack bool
	commitErr             error
}

func (u *fakeUnit) Workbook() workbook.Repository  { return nil }
func (u *fakeUnit) Preferences() preferences.Store { return nil }

func (u *fakeUnit) Commit(context.Context) error {
	u.committed = true
	return u.commitErr
}

func (u *fakeUnit) Rollback(context.Context) error {
	u.rolledBack = true
	return nil
}

type fakeFactory struct {
	units []*fakeUnit
	opts  []uow.TxOptions
	next  *fakeUnit
}

func (f *fakeFactory) Begin(_ context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	u := f.next
	if u == nil {
		u = &fakeUnit{}
	}
	f.next = nil
	f.units = append(f.units, u)
	f.opts = append(f.opts, opts)
	return u, nil
}

type memoryStore struct {
	mu   sync.Mutex
	recs map[string]IdempotencyRecord
}

func (s *memoryStore) Get(_ context.Context, key string) (IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[key]
	return rec, ok, nil
}

func (s *memoryStore) Save(_ context.Context, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recs == nil {
		s.recs = map[string]IdempotencyRecord{}
	}
	s.recs[rec.Key] = rec
	return nil
}

type flakyOutbox struct {
	flushes  int
	flushErr error
}

func (o *flakyOutbox) Add(context.Context, outbox.EventRecord) error { return nil }
func (o *flakyOutbox) Flush(context.Context) error {
	o.flushes++
	return o.flushErr
}

func pingBus(calls *int, fail error) *commands.InMemoryBus {
	bus := commands.NewInMemoryBus()
	handle := func(ctx context.Context, name string) (*pingResult, error) {
		*calls++
		if _, ok := uow.FromContext(ctx); !ok {
			return nil, uow.ErrUnitOfWorkMissing
		}
		if fail != nil {
			return nil, fail
		}
		return &pingResult{Echo: name, Calls: *calls}, nil
	}
	commands.RegisterHandler[pingCommand, *pingResult](bus, commands.HandlerFunc[pingCommand, *pingResult](
		func(ctx context.Context, cmd pingCommand) (*pingResult, error) { return handle(ctx, cmd.Name) }))
	commands.RegisterHandler[pongCommand, *pingResult](bus, commands.HandlerFunc[pongCommand, *pingResult](
		func(ctx context.Context, cmd pongCommand) (*pingResult, error) { return handle(ctx, "pong") }))
	return bus
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	var calls int
	factory := &fakeFactory{}
	box := &flakyOutbox{}
	bus := ChainCommands(pingBus(&calls, nil), Transaction(factory, nil, nil), OutboxFlush(box))

	res, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "a"})

	require.NoError(t, err)
	assert.Equal(t, "a", res.Echo)
	require.Len(t, factory.units, 1)
	assert.True(t, factory.units[0].committed)
	assert.False(t, factory.units[0].rolledBack)
	assert.Equal(t, 1, box.flushes)
}

func TestTransactionRollsBackOnHandlerError(t *testing.T) {
	var calls int
	boom := errors.New("boom")
	factory := &fakeFactory{}
	box := &flakyOutbox{}
	bus := ChainCommands(pingBus(&calls, boom), Transaction(factory, nil, nil), OutboxFlush(box))

	_, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "a"})

	require.ErrorIs(t, err, boom)
	assert.False(t, factory.units[0].committed)
	assert.True(t, factory.units[0].rolledBack)
	assert.Zero(t, box.flushes)
}

func TestFailedFlushAbortsCommit(t *testing.T) {
	var calls int
	factory := &fakeFactory{}
	box := &flakyOutbox{flushErr: errors.New("mongo down")}
	bus := ChainCommands(pingBus(&calls, nil), Transaction(factory, nil, nil), OutboxFlush(box))

	_, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.ping")
	assert.False(t, factory.units[0].committed)
	assert.True(t, factory.units[0].rolledBack)
}

func TestTransactionPassesOptions(t *testing.T) {
	var calls int
	factory := &fakeFactory{}
	readOnly := func(cmd commands.Command) uow.TxOptions { return uow.TxOptions{ReadOnly: cmd.Key() == "test.pong"} }
	bus := ChainCommands(pingBus(&calls, nil), Transaction(factory, readOnly, nil))

	_, err := commands.Dispatch[pongCommand, *pingResult](context.Background(), bus, pongCommand{})
	require.NoError(t, err)
	_, err = commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "a"})
	require.NoError(t, err)

	assert.Equal(t, []uow.TxOptions{{ReadOnly: true}, {ReadOnly: false}}, factory.opts)
}

func TestIdempotencyReplaysStoredResult(t *testing.T) {
	var calls int
	store := &memoryStore{}
	bus := ChainCommands(pingBus(&calls, nil), Idempotency(store, nil, time.Hour), Transaction(&fakeFactory{}, nil, nil))
	ctx := context.Background()

	first, err := commands.Dispatch[pingCommand, *pingResult](ctx, bus, pingCommand{Name: "a", IdemKey: "k"})
	require.NoError(t, err)
	second, err := commands.Dispatch[pingCommand, *pingResult](ctx, bus, pingCommand{Name: "a", IdemKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestIdempotencyExpiredRecordRunsAgain(t *testing.T) {
	var calls int
	store := &memoryStore{recs: map[string]IdempotencyRecord{
		"k": {Key: "k", Command: "test.ping", Payload: []byte(`{"echo":"old"}`), OccurredAt: time.Now().Add(-2 * time.Hour)},
	}}
	bus := ChainCommands(pingBus(&calls, nil), Idempotency(store, nil, time.Hour), Transaction(&fakeFactory{}, nil, nil))

	res, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "new", IdemKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, "new", res.Echo)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyKeyReusedByAnotherCommand(t *testing.T) {
	var calls int
	store := &memoryStore{}
	bus := ChainCommands(pingBus(&calls, nil), Idempotency(store, nil, 0), Transaction(&fakeFactory{}, nil, nil))
	ctx := context.Background()

	_, err := commands.Dispatch[pingCommand, *pingResult](ctx, bus, pingCommand{Name: "a", IdemKey: "k"})
	require.NoError(t, err)
	_, err = commands.Dispatch[pongCommand, *pingResult](ctx, bus, pongCommand{IdemKey: "k"})

	assert.ErrorIs(t, err, ErrIdempotencyKeyReused)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	var calls int
	store := &memoryStore{}
	bus := ChainCommands(pingBus(&calls, errors.New("nope")), Idempotency(store, nil, 0), Transaction(&fakeFactory{}, nil, nil))

	_, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{Name: "a", IdemKey: "k"})

	require.Error(t, err)
	assert.Empty(t, store.recs)
}

func TestValidationRejectsBeforeHandler(t *testing.T) {
	var calls int
	bus := ChainCommands(pingBus(&calls, nil), Validation(NewStructValidator()), Transaction(&fakeFactory{}, nil, nil))

	_, err := commands.Dispatch[pingCommand, *pingResult](context.Background(), bus, pingCommand{})

	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Zero(t, calls)
}

func TestQueryValidationAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	qb := queries.NewInMemoryBus()
	queries.RegisterHandler[pingQuery, int](qb, queries.HandlerFunc[pingQuery, int](
		func(_ context.Context, q pingQuery) (int, error) {
			if q.Limit > 5 {
				return 0, errors.New("too many")
			}
			return q.Limit, nil
		}))
	bus := ChainQueries(qb, QueryLogging(logger, time.Hour), QueryValidation(NewStructValidator()))
	ctx := context.Background()

	got, err := queries.Ask[pingQuery, int](ctx, bus, pingQuery{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Empty(t, buf.String(), "fast successful queries are not logged")

	_, err = queries.Ask[pingQuery, int](ctx, bus, pingQuery{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = queries.Ask[pingQuery, int](ctx, bus, pingQuery{Limit: 9})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "too many")
}

func TestChainOrderIsOutermostFirst(t *testing.T) {
	var order []string
	mark := func(name string) CommandMiddleware {
		return func(next commands.Bus) commands.Bus {
			return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
				order = append(order, name)
				return next.Dispatch(ctx, cmd)
			})
		}
	}
	base := commandFunc(func(context.Context, commands.Command) (any, error) { return nil, nil })

	_, err := ChainCommands(base, mark("outer"), mark("inner")).Dispatch(context.Background(), pongCommand{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
