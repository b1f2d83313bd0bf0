package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

// FeedUsecase builds the feed views: it resolves the ranking strategy,
// hands the (filter, order) pair to the pagination engine and annotates
// each returned item with the caller's like/save state.
type FeedUsecase struct {
	contents    ContentRepository
	engagements EngagementRepository
	cache       FeedCache
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewFeedUsecase(contents ContentRepository, engagements EngagementRepository, cache FeedCache, cacheTTL time.Duration) *FeedUsecase {
	return &FeedUsecase{
		contents:    contents,
		engagements: engagements,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// GetFeed resolves one feed page. Anonymous trending pages are served
// through the feed cache; everything else is computed per request.
func (uc *FeedUsecase) GetFeed(ctx context.Context, q driftboard.FeedQuery) (driftboard.PageResult[driftboard.FeedItem], error) {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.GetFeed")
	defer span.End()

	q, err := normalizeQuery(q)
	if err != nil {
		return driftboard.PageResult[driftboard.FeedItem]{}, err
	}

	cacheable := uc.cache != nil && q.Actor == "" && q.Sort == driftboard.SortTrending
	var cacheKey string
	if cacheable {
		cacheKey = feedCacheKey(q)
		if page, ok := uc.cache.Get(ctx, cacheKey); ok {
			return *page, nil
		}
	}

	var affinity []driftboard.Category
	if q.Sort == driftboard.SortPersonalized && q.Actor != "" {
		affinity, err = uc.affinitySet(ctx, q.Actor)
		if err != nil {
			return driftboard.PageResult[driftboard.FeedItem]{}, err
		}
	}

	filter, order, err := resolveView(q, affinity, uc.now())
	if err != nil {
		return driftboard.PageResult[driftboard.FeedItem]{}, err
	}

	page, err := Paginate(ctx, q.Page, q.PageSize,
		func(ctx context.Context) (int64, error) {
			return uc.contents.Count(ctx, filter)
		},
		func(ctx context.Context, offset, limit int) ([]driftboard.ContentItem, error) {
			return uc.contents.FetchPage(ctx, filter, order, offset, limit)
		},
	)
	if err != nil {
		return driftboard.PageResult[driftboard.FeedItem]{}, err
	}

	annotated, err := uc.annotate(ctx, q.Actor, page)
	if err != nil {
		return driftboard.PageResult[driftboard.FeedItem]{}, err
	}

	if cacheable {
		uc.cache.Set(ctx, cacheKey, annotated, uc.cacheTTL)
	}

	return annotated, nil
}

// affinitySet derives the distinct categories of everything the actor has
// an active like relation on.
func (uc *FeedUsecase) affinitySet(ctx context.Context, actor string) ([]driftboard.Category, error) {
	ids, err := uc.engagements.ListContentIDs(ctx, actor, driftboard.KindLike)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return uc.contents.DistinctCategories(ctx, ids)
}

// annotate resolves the caller's own like/save state for every item on the
// page with one batched relation query per kind.
func (uc *FeedUsecase) annotate(ctx context.Context, actor string, page driftboard.PageResult[driftboard.ContentItem]) (driftboard.PageResult[driftboard.FeedItem], error) {

	out := driftboard.PageResult[driftboard.FeedItem]{
		Items:      make([]driftboard.FeedItem, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}

	var liked, saved map[string]bool
	if actor != "" && len(page.Items) > 0 {
		ids := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			ids = append(ids, item.ID)
		}

		var err error
		liked, err = uc.engagements.ActiveSet(ctx, actor, ids, driftboard.KindLike)
		if err != nil {
			return out, err
		}
		saved, err = uc.engagements.ActiveSet(ctx, actor, ids, driftboard.KindSave)
		if err != nil {
			return out, err
		}
	}

	for _, item := range page.Items {
		out.Items = append(out.Items, driftboard.FeedItem{
			ContentItem: item,
			IsLiked:     liked[item.ID],
			IsSaved:     saved[item.ID],
		})
	}

	return out, nil
}

// normalizeQuery applies defaults and bounds. An explicit page below one is
// a caller error; an oversized page size is clamped to the maximum.
func normalizeQuery(q driftboard.FeedQuery) (driftboard.FeedQuery, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return q, domain.InvalidQueryError{Reason: "page must be >= 1"}
	}
	if q.PageSize == 0 {
		q.PageSize = driftboard.DefaultPageSize
	}
	if q.PageSize < 1 {
		return q, domain.InvalidQueryError{Reason: "pageSize must be >= 1"}
	}
	if q.PageSize > driftboard.MaxPageSize {
		q.PageSize = driftboard.MaxPageSize
	}
	return q, nil
}

func feedCacheKey(q driftboard.FeedQuery) string {
	category := ""
	if q.Category != nil {
		category = string(*q.Category)
	}
	canonical := fmt.Sprintf("%s|%s|%s|%s|%d|%d",
		q.Sort, q.Period, category, q.Search, q.Page, q.PageSize)
	return fmt.Sprintf("feed:%016x", xxh3.HashString(canonical))
}
