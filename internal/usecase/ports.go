package usecase

import (
	"context"
	"time"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

// ContentRepository defines storage operations for content items. Count and
// FetchPage are the count+fetch primitives the pagination engine runs over.
type ContentRepository interface {
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	FetchPage(ctx context.Context, filter domain.Filter, order []domain.OrderKey, offset, limit int) ([]driftboard.ContentItem, error)
	Get(ctx context.Context, id string) (driftboard.ContentItem, error)
	Create(ctx context.Context, item driftboard.ContentItem) error
	Delete(ctx context.Context, id string) error
	AdjustCounter(ctx context.Context, id string, field domain.CounterField, delta int64) error
	DistinctCategories(ctx context.Context, ids []string) ([]driftboard.Category, error)
}

// EngagementRepository defines storage operations for the engagement
// relation set. Toggle must flip the relation and reconcile the content's
// denormalized counter in a single transaction.
type EngagementRepository interface {
	Toggle(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (active bool, count int64, err error)
	Has(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (bool, error)
	Count(ctx context.Context, contentID string, kind driftboard.EngagementKind) (int64, error)
	ListContentIDs(ctx context.Context, actor string, kind driftboard.EngagementKind) ([]string, error)
	ActiveSet(ctx context.Context, actor string, contentIDs []string, kind driftboard.EngagementKind) (map[string]bool, error)
}

// CommentRepository is the ordered append log backing comment threads.
type CommentRepository interface {
	Append(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	List(ctx context.Context, contentID string) ([]domain.Comment, error)
}

// TemplateRepository lists the content template catalog.
type TemplateRepository interface {
	List(ctx context.Context) ([]domain.Template, error)
}

// FeedCache caches rendered feed pages for anonymous callers. A miss is
// never an error; unavailability degrades to recomputation.
type FeedCache interface {
	Get(ctx context.Context, key string) (*driftboard.PageResult[driftboard.FeedItem], bool)
	Set(ctx context.Context, key string, page driftboard.PageResult[driftboard.FeedItem], ttl time.Duration)
}
