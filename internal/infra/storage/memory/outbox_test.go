package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "lynx/internal/app/outbox"
)

func recordNames(records []appoutbox.EventRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestOutboxFlushPublishesInOrder(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox(nil)

	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "1", Name: "booking.added"}))
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "2", Name: "workbook.saved"}))
	assert.Empty(t, box.Published(), "nothing is published before Flush")

	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, []string{"booking.added", "workbook.saved"}, recordNames(box.Published()))

	require.NoError(t, box.Flush(ctx))
	assert.Len(t, box.Published(), 2, "a second flush does not republish")

	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "3", Name: "booking.deleted"}))
	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, []string{"booking.added", "workbook.saved", "booking.deleted"}, recordNames(box.Published()))
}

func TestOutboxPublishedIsACopy(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox(nil)
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "1", Name: "booking.added"}))
	require.NoError(t, box.Flush(ctx))

	got := box.Published()
	got[0].Name = "changed"
	assert.Equal(t, "booking.added", box.Published()[0].Name)
}
