package projection

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/infrastructure/kafka"
)

// SyncDispatcher is an in-process event bus. It satisfies store.Publisher so
// the event store can run without Kafka: every appended event is handed to
// the registered handlers before Append returns, which keeps read models
// consistent with the write side inside a single process.
type SyncDispatcher struct {
	handlers []kafka.MessageHandler
}

func NewSyncDispatcher(handlers ...kafka.MessageHandler) *SyncDispatcher {
	return &SyncDispatcher{handlers: handlers}
}

// Register adds a handler. Not safe to call after events start flowing.
func (d *SyncDispatcher) Register(handler kafka.MessageHandler) {
	d.handlers = append(d.handlers, handler)
}

func (d *SyncDispatcher) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for _, handler := range d.handlers {
		if err := handler(ctx, []byte(key), data); err != nil {
			log.WithError(err).Error("[Dispatcher] Handler failed")
			return err
		}
	}
	return nil
}
