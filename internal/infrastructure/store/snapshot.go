package store

import (
	"encoding/json"
	"time"
)

// SnapshotThreshold is how many events an aggregate accumulates before a
// snapshot is cut. Carts and wishlists are the only aggregates that grow
// past it in practice; a busy session replays from the latest snapshot plus
// at most this many events.
const SnapshotThreshold = 10

// Snapshot is a serialized aggregate state at a known event version.
// Replays start here and apply only the events appended after Version.
type Snapshot struct {
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	State         json.RawMessage `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
}
