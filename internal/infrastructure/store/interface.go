package store

import "context"

// EventStoreInterface is the write side's storage contract: append-only
// per-aggregate event streams plus snapshot support. Append is the only
// mutation the domain services perform; everything the query side shows is
// projected from what lands here.
type EventStoreInterface interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(aggregateID string) []Event
	GetEventsFromVersion(ctx context.Context, aggregateID string, version int) []Event
	GetAllEvents() []Event
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error)
}
