package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

// --- mocks ---

type memContentRepo struct {
	items      []driftboard.ContentItem
	fetchCalls int
}

func (m *memContentRepo) matching(filter domain.Filter) []driftboard.ContentItem {
	var out []driftboard.ContentItem
	for _, item := range m.items {
		if filter.PublicOnly && !item.Public {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.CreatedAfter != nil && item.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m *memContentRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	return int64(len(m.matching(filter))), nil
}

func (m *memContentRepo) FetchPage(ctx context.Context, filter domain.Filter, order []domain.OrderKey, offset, limit int) ([]driftboard.ContentItem, error) {
	m.fetchCalls++

	matched := m.matching(filter)
	sort.SliceStable(matched, func(i, j int) bool {
		return orderLess(matched[i], matched[j], order)
	})

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func orderLess(a, b driftboard.ContentItem, order []domain.OrderKey) bool {
	for _, key := range order {
		var cmp int
		switch key.Column {
		case domain.OrderCreatedAt:
			if a.CreatedAt.Before(b.CreatedAt) {
				cmp = -1
			} else if a.CreatedAt.After(b.CreatedAt) {
				cmp = 1
			}
		case domain.OrderLikeCount:
			cmp = int(a.LikeCount - b.LikeCount)
		case domain.OrderCommentCount:
			cmp = int(a.CommentCount - b.CommentCount)
		case domain.OrderCategoryBoost:
			cmp = boostValue(a, key.Boost) - boostValue(b, key.Boost)
		}
		if key.Desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
	}
	return false
}

func boostValue(item driftboard.ContentItem, boost []driftboard.Category) int {
	for _, c := range boost {
		if item.Category == c {
			return 1
		}
	}
	return 0
}

func (m *memContentRepo) Get(ctx context.Context, id string) (driftboard.ContentItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return driftboard.ContentItem{}, domain.NotFoundError{Resource: "content"}
}

func (m *memContentRepo) Create(ctx context.Context, item driftboard.ContentItem) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memContentRepo) Delete(ctx context.Context, id string) error {
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "content"}
}

func (m *memContentRepo) AdjustCounter(ctx context.Context, id string, field domain.CounterField, delta int64) error {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		switch field {
		case domain.CounterLikes:
			m.items[i].LikeCount += delta
			if m.items[i].LikeCount < 0 {
				m.items[i].LikeCount = 0
			}
		case domain.CounterComments:
			m.items[i].CommentCount += delta
			if m.items[i].CommentCount < 0 {
				m.items[i].CommentCount = 0
			}
		}
		return nil
	}
	return domain.NotFoundError{Resource: "content"}
}

func (m *memContentRepo) DistinctCategories(ctx context.Context, ids []string) ([]driftboard.Category, error) {
	seen := map[driftboard.Category]bool{}
	var out []driftboard.Category
	for _, id := range ids {
		for _, item := range m.items {
			if item.ID == id && !seen[item.Category] {
				seen[item.Category] = true
				out = append(out, item.Category)
			}
		}
	}
	return out, nil
}

// memEngagementRepo mirrors the store contract: the relation set is the
// source of truth and the content's like counter is rewritten from a
// recount on every toggle.
type memEngagementRepo struct {
	contents  *memContentRepo
	relations []domain.EngagementRecord
}

func (m *memEngagementRepo) find(actor, contentID string, kind driftboard.EngagementKind) int {
	for i, rel := range m.relations {
		if rel.ActorID == actor && rel.ContentID == contentID && rel.Kind == kind {
			return i
		}
	}
	return -1
}

func (m *memEngagementRepo) Toggle(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (bool, int64, error) {
	if _, err := m.contents.Get(ctx, contentID); err != nil {
		return false, 0, err
	}

	var active bool
	if i := m.find(actor, contentID, kind); i >= 0 {
		m.relations = append(m.relations[:i], m.relations[i+1:]...)
		active = false
	} else {
		m.relations = append(m.relations, domain.EngagementRecord{
			ActorID:   actor,
			ContentID: contentID,
			Kind:      kind,
			CreatedAt: time.Now(),
		})
		active = true
	}

	count, _ := m.Count(ctx, contentID, kind)
	if kind == driftboard.KindLike {
		for i := range m.contents.items {
			if m.contents.items[i].ID == contentID {
				m.contents.items[i].LikeCount = count
			}
		}
	}
	return active, count, nil
}

func (m *memEngagementRepo) Has(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (bool, error) {
	if _, err := m.contents.Get(ctx, contentID); err != nil {
		return false, err
	}
	return m.find(actor, contentID, kind) >= 0, nil
}

func (m *memEngagementRepo) Count(ctx context.Context, contentID string, kind driftboard.EngagementKind) (int64, error) {
	var n int64
	for _, rel := range m.relations {
		if rel.ContentID == contentID && rel.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (m *memEngagementRepo) ListContentIDs(ctx context.Context, actor string, kind driftboard.EngagementKind) ([]string, error) {
	var ids []string
	for i := len(m.relations) - 1; i >= 0; i-- {
		if m.relations[i].ActorID == actor && m.relations[i].Kind == kind {
			ids = append(ids, m.relations[i].ContentID)
		}
	}
	return ids, nil
}

func (m *memEngagementRepo) ActiveSet(ctx context.Context, actor string, contentIDs []string, kind driftboard.EngagementKind) (map[string]bool, error) {
	result := map[string]bool{}
	for _, id := range contentIDs {
		if m.find(actor, id, kind) >= 0 {
			result[id] = true
		}
	}
	return result, nil
}

type fakeFeedCache struct {
	store map[string]driftboard.PageResult[driftboard.FeedItem]
	sets  int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{store: map[string]driftboard.PageResult[driftboard.FeedItem]{}}
}

func (f *fakeFeedCache) Get(ctx context.Context, key string) (*driftboard.PageResult[driftboard.FeedItem], bool) {
	page, ok := f.store[key]
	if !ok {
		return nil, false
	}
	return &page, true
}

func (f *fakeFeedCache) Set(ctx context.Context, key string, page driftboard.PageResult[driftboard.FeedItem], ttl time.Duration) {
	f.store[key] = page
	f.sets++
}

// --- helpers ---

func fixedItem(id string, category driftboard.Category, likes int64, createdAt time.Time) driftboard.ContentItem {
	return driftboard.ContentItem{
		ID:        id,
		Title:     "title " + id,
		MediaURL:  "https://media.example/" + id,
		Category:  category,
		OwnerID:   "owner-" + id,
		Public:    true,
		LikeCount: likes,
		CreatedAt: createdAt,
	}
}

func itemIDs(items []driftboard.FeedItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// --- tests ---

func TestGetFeedTrendingWindow(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("old", driftboard.CategoryGeneral, 99, now.Add(-10*24*time.Hour)),
		fixedItem("mid", driftboard.CategoryGeneral, 5, now.Add(-3*24*time.Hour)),
		fixedItem("fresh", driftboard.CategoryGeneral, 1, now.Add(-12*time.Hour)),
	}}
	engagements := &memEngagementRepo{contents: contents}

	uc := NewFeedUsecase(contents, engagements, nil, 0)

	result, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort:   driftboard.SortTrending,
		Period: driftboard.PeriodWeek,
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}

	ids := itemIDs(result.Items)
	if len(ids) != 2 || ids[0] != "mid" || ids[1] != "fresh" {
		t.Fatalf("expected [mid fresh] got %v", ids)
	}
}

func TestGetFeedTrendingInvalidPeriod(t *testing.T) {
	contents := &memContentRepo{}
	uc := NewFeedUsecase(contents, &memEngagementRepo{contents: contents}, nil, 0)

	_, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort:   driftboard.SortTrending,
		Period: "fortnight",
	})
	if !isInvalidQuery(err) {
		t.Fatalf("expected InvalidQuery got %v", err)
	}
}

func TestGetFeedPersonalizedFallback(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("a", driftboard.CategoryGeneral, 0, now.Add(-3*time.Hour)),
		fixedItem("b", driftboard.CategoryProgramming, 0, now.Add(-2*time.Hour)),
		fixedItem("c", driftboard.CategoryDesign, 0, now.Add(-1*time.Hour)),
	}}
	engagements := &memEngagementRepo{contents: contents}
	uc := NewFeedUsecase(contents, engagements, nil, 0)

	personalized, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort:  driftboard.SortPersonalized,
		Actor: "actor-without-likes",
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}

	newest, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort: driftboard.SortNewest,
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}

	got, want := itemIDs(personalized.Items), itemIDs(newest.Items)
	if len(got) != len(want) {
		t.Fatalf("expected identical ordering, got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("expected identical ordering, got %v want %v", got, want)
		}
	}
}

func TestGetFeedPersonalizedBoost(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("prog1", driftboard.CategoryProgramming, 0, now.Add(-6*time.Hour)),
		fixedItem("prog2", driftboard.CategoryProgramming, 0, now.Add(-5*time.Hour)),
		fixedItem("prog3", driftboard.CategoryProgramming, 0, now.Add(-4*time.Hour)),
		fixedItem("food1", driftboard.CategoryFood, 0, now.Add(-1*time.Hour)),
		fixedItem("travel1", driftboard.CategoryTravel, 0, now.Add(-2*time.Hour)),
	}}
	engagements := &memEngagementRepo{contents: contents}

	ctx := context.Background()
	for _, id := range []string{"prog1", "prog2", "prog3"} {
		if _, _, err := engagements.Toggle(ctx, "alice", id, driftboard.KindLike); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}

	uc := NewFeedUsecase(contents, engagements, nil, 0)

	result, err := uc.GetFeed(ctx, driftboard.FeedQuery{
		Sort:  driftboard.SortPersonalized,
		Actor: "alice",
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}

	ids := itemIDs(result.Items)
	want := []string{"prog3", "prog2", "prog1", "food1", "travel1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v got %v", want, ids)
		}
	}
}

func TestGetFeedAnnotation(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("x", driftboard.CategoryGeneral, 0, now.Add(-2*time.Hour)),
		fixedItem("y", driftboard.CategoryGeneral, 0, now.Add(-1*time.Hour)),
	}}
	engagements := &memEngagementRepo{contents: contents}

	ctx := context.Background()
	if _, _, err := engagements.Toggle(ctx, "bob", "x", driftboard.KindLike); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, _, err := engagements.Toggle(ctx, "bob", "y", driftboard.KindSave); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	uc := NewFeedUsecase(contents, engagements, nil, 0)

	result, err := uc.GetFeed(ctx, driftboard.FeedQuery{
		Sort:  driftboard.SortNewest,
		Actor: "bob",
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}

	byID := map[string]driftboard.FeedItem{}
	for _, item := range result.Items {
		byID[item.ID] = item
	}

	if !byID["x"].IsLiked || byID["x"].IsSaved {
		t.Fatalf("expected x liked only, got %+v", byID["x"])
	}
	if byID["y"].IsLiked || !byID["y"].IsSaved {
		t.Fatalf("expected y saved only, got %+v", byID["y"])
	}
}

func TestGetFeedClampScenario(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{}
	for i := 0; i < 25; i++ {
		contents.items = append(contents.items, fixedItem(
			string(rune('a'+i)), driftboard.CategoryGeneral, 0,
			now.Add(-time.Duration(i)*time.Hour),
		))
	}
	engagements := &memEngagementRepo{contents: contents}
	uc := NewFeedUsecase(contents, engagements, nil, 0)

	first, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort: driftboard.SortNewest, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if first.TotalPages != 3 || len(first.Items) != 10 {
		t.Fatalf("expected 3 pages of 10, got %d pages, %d items", first.TotalPages, len(first.Items))
	}

	clamped, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort: driftboard.SortNewest, Page: 5, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if clamped.Page != 3 || len(clamped.Items) != 5 {
		t.Fatalf("expected clamp to page 3 with 5 items, got page %d with %d items", clamped.Page, len(clamped.Items))
	}
}

func TestGetFeedInvalidPage(t *testing.T) {
	contents := &memContentRepo{}
	uc := NewFeedUsecase(contents, &memEngagementRepo{contents: contents}, nil, 0)

	_, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort: driftboard.SortNewest, Page: -1,
	})
	if !isInvalidQuery(err) {
		t.Fatalf("expected InvalidQuery got %v", err)
	}
}

func TestGetFeedPageSizeClamped(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("a", driftboard.CategoryGeneral, 0, now),
	}}
	uc := NewFeedUsecase(contents, &memEngagementRepo{contents: contents}, nil, 0)

	result, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{
		Sort: driftboard.SortNewest, PageSize: 500,
	})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if result.PageSize != driftboard.MaxPageSize {
		t.Fatalf("expected page size %d got %d", driftboard.MaxPageSize, result.PageSize)
	}
}

func TestGetFeedUnknownSort(t *testing.T) {
	contents := &memContentRepo{}
	uc := NewFeedUsecase(contents, &memEngagementRepo{contents: contents}, nil, 0)

	_, err := uc.GetFeed(context.Background(), driftboard.FeedQuery{Sort: "hotness"})
	if !isInvalidQuery(err) {
		t.Fatalf("expected InvalidQuery got %v", err)
	}
}

func TestGetFeedTrendingCache(t *testing.T) {
	now := time.Now()
	contents := &memContentRepo{items: []driftboard.ContentItem{
		fixedItem("a", driftboard.CategoryGeneral, 3, now.Add(-1*time.Hour)),
	}}
	engagements := &memEngagementRepo{contents: contents}
	feedCache := newFakeFeedCache()

	uc := NewFeedUsecase(contents, engagements, feedCache, time.Minute)

	query := driftboard.FeedQuery{Sort: driftboard.SortTrending, Period: driftboard.PeriodDay}

	if _, err := uc.GetFeed(context.Background(), query); err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if feedCache.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", feedCache.sets)
	}

	fetchesBefore := contents.fetchCalls
	if _, err := uc.GetFeed(context.Background(), query); err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if contents.fetchCalls != fetchesBefore {
		t.Fatalf("expected cached page, but store was fetched again")
	}

	// authenticated requests carry per-actor annotation and must bypass
	// the shared cache
	authed := query
	authed.Actor = "carol"
	if _, err := uc.GetFeed(context.Background(), authed); err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if contents.fetchCalls == fetchesBefore {
		t.Fatalf("expected authenticated request to bypass cache")
	}
}

func isInvalidQuery(err error) bool {
	return errors.Is(err, domain.ErrInvalidQuery)
}
