package xlsx

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/shared/money"
)

type memoryInbox map[string]bool

func (m memoryInbox) Seen(_ context.Context, id string) (bool, error) {
	seen := m[id]
	m[id] = true
	return seen, nil
}

func TestCacheSyncInvalidatesOncePerEvent(t *testing.T) {
	path := writeTracker(t)
	cache := NewCache()
	repo := NewRepository(path, money.DefaultRate, cache, nil)
	sync := CacheSync{Repository: repo, Inbox: memoryInbox{}}
	ctx := context.Background()

	warm := func() {
		_, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, cache.Len())
	}

	warm()
	require.NoError(t, sync.Handle(ctx, &sarama.ConsumerMessage{Value: []byte(`{"id":"evt-1","type":"booking.added.v1"}`)}))
	assert.Equal(t, 1, cache.Len(), "other event types are ignored")

	require.NoError(t, sync.Handle(ctx, &sarama.ConsumerMessage{Value: []byte(`{"id":"evt-2","type":"workbook.saved.v1"}`)}))
	assert.Zero(t, cache.Len())

	warm()
	require.NoError(t, sync.Handle(ctx, &sarama.ConsumerMessage{Value: []byte(`{"id":"evt-2","type":"workbook.saved.v1"}`)}))
	assert.Equal(t, 1, cache.Len(), "redelivery is deduplicated")

	err := sync.Handle(ctx, &sarama.ConsumerMessage{Value: []byte(`not json`)})
	assert.Error(t, err)
}
