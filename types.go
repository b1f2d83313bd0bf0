package driftboard

import (
	"time"
)

// SortMode selects one of the feed view strategies. The string values are
// part of the external contract and must stay stable.
type SortMode string

const (
	SortNewest        SortMode = "newest"
	SortOldest        SortMode = "oldest"
	SortMostLiked     SortMode = "most-liked"
	SortMostCommented SortMode = "most-commented"
	SortTrending      SortMode = "trending"
	SortPersonalized  SortMode = "personalized"
)

func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortNewest, SortOldest, SortMostLiked, SortMostCommented, SortTrending, SortPersonalized:
		return SortMode(s), true
	}
	return "", false
}

// TrendingPeriod bounds the recency window of the trending view.
type TrendingPeriod string

const (
	PeriodDay   TrendingPeriod = "day"
	PeriodWeek  TrendingPeriod = "week"
	PeriodMonth TrendingPeriod = "month"
	PeriodAll   TrendingPeriod = "all"
)

func ParseTrendingPeriod(s string) (TrendingPeriod, bool) {
	switch TrendingPeriod(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return TrendingPeriod(s), true
	}
	return "", false
}

// Window returns the inclusive lower bound of the period, or nil for
// PeriodAll.
func (p TrendingPeriod) Window(now time.Time) *time.Time {
	var since time.Time
	switch p {
	case PeriodDay:
		since = now.Add(-24 * time.Hour)
	case PeriodWeek:
		since = now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		since = now.Add(-30 * 24 * time.Hour)
	default:
		return nil
	}
	return &since
}

// EngagementKind discriminates the two relation kinds an actor can hold
// against a content item.
type EngagementKind string

const (
	KindLike EngagementKind = "like"
	KindSave EngagementKind = "save"
)

// Category is the fixed set of content categories.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryProgramming Category = "programming"
	CategoryDesign      Category = "design"
	CategoryPhotography Category = "photography"
	CategoryMusic       Category = "music"
	CategoryGaming      Category = "gaming"
	CategoryFood        Category = "food"
	CategoryTravel      Category = "travel"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryGeneral, CategoryProgramming, CategoryDesign, CategoryPhotography,
		CategoryMusic, CategoryGaming, CategoryFood, CategoryTravel:
		return Category(s), true
	}
	return "", false
}

// ContentItem is a shareable unit. LikeCount and CommentCount are
// denormalized aggregates kept in sync with the engagement relation set.
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MediaURL     string    `json:"mediaURL"`
	Description  string    `json:"description,omitempty"`
	Category     Category  `json:"category"`
	Tags         []string  `json:"tags,omitempty"`
	OwnerID      string    `json:"ownerID"`
	OwnerName    string    `json:"ownerName"`
	Public       bool      `json:"public"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedItem is a ContentItem annotated with the requesting actor's own
// engagement state. Both flags are false for anonymous requests.
type FeedItem struct {
	ContentItem
	IsLiked bool `json:"isLiked"`
	IsSaved bool `json:"isSaved"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// FeedQuery describes one feed page request. Actor is empty for anonymous
// requests; Period is only consulted when Sort is SortTrending.
type FeedQuery struct {
	Search   string
	Category *Category
	Sort     SortMode
	Period   TrendingPeriod
	Actor    string
	Page     int
	PageSize int
}

// PageResult is the response envelope shared by every paginated view.
// Page reflects the effective page after clamping.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

type ToggleLikeResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type ToggleSaveResult struct {
	Saved bool `json:"saved"`
}

type EngagementStatus struct {
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}
