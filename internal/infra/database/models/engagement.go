package models

import (
	"time"
)

// Engagement is the normalized (actor, content, kind) relation. The
// composite primary key is the uniqueness constraint that serializes
// concurrent toggles of the same tuple across server processes.
type Engagement struct {
	ActorID   string    `json:"actorID" gorm:"primaryKey;type:text"`
	ContentID string    `json:"contentID" gorm:"primaryKey;type:text;index"`
	Content   Content   `json:"-" gorm:"foreignKey:ContentID;references:ID;constraint:OnDelete:CASCADE;"`
	Kind      string    `json:"kind" gorm:"primaryKey;type:text"`
	CreatedAt time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
