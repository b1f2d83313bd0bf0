package domain

import (
	"time"

	"github.com/kagari-dev/driftboard"
)

// CounterField names a denormalized counter on a content item.
type CounterField string

const (
	CounterLikes    CounterField = "likeCount"
	CounterComments CounterField = "commentCount"
)

// Comment is one entry of a content item's ordered append log.
type Comment struct {
	ID        int64     `json:"id"`
	ContentID string    `json:"contentID"`
	AuthorID  string    `json:"authorID"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Template is one entry of the content template catalog.
type Template struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	MediaURL  string              `json:"mediaURL"`
	Category  driftboard.Category `json:"category"`
	CreatedAt time.Time           `json:"createdAt"`
}
