package xlsx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// SavedEventType is the CloudEvent type published after every workbook save.
const SavedEventType = "workbook.saved.v1"

// Inbox deduplicates redelivered events.
type Inbox interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// CacheSync drops the cached workbook when another instance reports a save.
// It is a kafka.MessageHandler for the workbook events topic.
type CacheSync struct {
	Repository *Repository
	Inbox      Inbox
	Logger     *slog.Logger
}

type cloudEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (s CacheSync) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt cloudEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return fmt.Errorf("xlsx: decode event at offset %d: %w", msg.Offset, err)
	}
	if evt.Type != SavedEventType {
		return nil
	}
	if s.Inbox != nil && evt.ID != "" {
		seen, err := s.Inbox.Seen(ctx, evt.ID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
	}
	s.Repository.Invalidate()
	if s.Logger != nil {
		s.Logger.DebugContext(ctx, "workbook cache invalidated", "event_id", evt.ID)
	}
	return nil
}
