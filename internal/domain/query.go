package domain

import (
	"time"

	"github.com/kagari-dev/driftboard"
)

// Filter restricts the content set a feed view ranks over. The zero value
// matches everything.
type Filter struct {
	Search       string
	Category     *driftboard.Category
	CreatedAfter *time.Time
	PublicOnly   bool
	OwnerID      string
}

// OrderColumn enumerates the ordering keys a view strategy can emit.
// Keeping this a tagged variant (rather than raw SQL strings) means adding
// a view is an exhaustive-switch change in both the ranking engine and the
// store adapter.
type OrderColumn int

const (
	OrderCreatedAt OrderColumn = iota
	OrderLikeCount
	OrderCommentCount
	OrderCategoryBoost
)

// OrderKey is one element of an ordering key sequence. Boost is only
// consulted for OrderCategoryBoost and holds the affinity set: items whose
// category is in the set sort ahead of those whose is not.
type OrderKey struct {
	Column OrderColumn
	Desc   bool
	Boost  []driftboard.Category
}
