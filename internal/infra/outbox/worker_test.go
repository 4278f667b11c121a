package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaimer struct {
	queue  []*EventDocument
	sent   []string
	failed map[string]string
}

func (f *fakeClaimer) Claim(context.Context, string) (*EventDocument, error) {
	if len(f.queue) == 0 {
		return nil, nil
	}
	doc := f.queue[0]
	f.queue = f.queue[1:]
	return doc, nil
}

func (f *fakeClaimer) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeClaimer) MarkFailed(_ context.Context, id string, _ time.Time, msg string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = msg
	return nil
}

type published struct {
	topic, key string
	payload    []byte
	headers    map[string]string
}

type fakeProducer struct {
	out  []published
	fail error
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.fail != nil {
		return p.fail
	}
	p.out = append(p.out, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

func TestWorkerDrainPublishesCloudEvents(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeClaimer{queue: []*EventDocument{
		{ID: "evt-1", Name: "booking.added", Aggregate: "booking-1", Payload: []byte(`{"Revenue":88}`), OccurredAt: at},
		{ID: "evt-2", Name: "workbook.saved", Aggregate: "workbook", Payload: []byte(`{"Bookings":3}`), OccurredAt: at,
			Headers: map[string]string{"traceparent": "00-abc-def-01"}},
	}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, TopicPrefix: "dev."}

	sent, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"evt-1", "evt-2"}, store.sent)

	require.Len(t, producer.out, 2)
	assert.Equal(t, "dev.booking.events.v1", producer.out[0].topic)
	assert.Equal(t, "booking-1", producer.out[0].key)
	assert.Equal(t, "dev.workbook.events.v1", producer.out[1].topic)
	assert.Equal(t, "application/cloudevents+json", producer.out[1].headers["content-type"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(producer.out[1].payload, &evt))
	assert.Equal(t, "evt-2", evt["id"])
	assert.Equal(t, "workbook.saved.v1", evt["type"])
	assert.Equal(t, "app://lynx", evt["source"])
	assert.Equal(t, "00-abc-def-01", evt["traceparent"])
	assert.Equal(t, map[string]any{"Bookings": float64(3)}, evt["data"])
}

func TestWorkerMarksFailuresForRetry(t *testing.T) {
	store := &fakeClaimer{queue: []*EventDocument{
		{ID: "evt-1", Name: "booking.added", Payload: []byte(`{}`)},
		{ID: "evt-2", Name: "booking.added", Payload: []byte(`not json`)},
	}}
	w := &Worker{Store: store, Producer: &fakeProducer{fail: errors.New("broker down")}, Backoff: []time.Duration{time.Second}}

	sent, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, store.sent)
	assert.Equal(t, "broker down", store.failed["evt-1"])
	assert.Contains(t, store.failed, "evt-2")
}

func TestWorkerRequiresDependencies(t *testing.T) {
	err := (&Worker{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrWorkerNotConfigured)
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "report.events.v1", TopicFor("", "report.exported"))
	assert.Equal(t, "lynx.workbook.events.v1", TopicFor("lynx.", "workbook"))
}
