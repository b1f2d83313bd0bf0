package domain

import (
	"time"

	"github.com/kagari-dev/driftboard"
)

// EngagementRecord is one actor's active relation to one content item.
// At most one record exists per (actor, content, kind) tuple; the relation
// is a set, not a multiset. Toggling off deletes the row, no tombstone is
// kept.
type EngagementRecord struct {
	ActorID   string                    `json:"actorID"`
	ContentID string                    `json:"contentID"`
	Kind      driftboard.EngagementKind `json:"kind"`
	CreatedAt time.Time                 `json:"createdAt"`
}
