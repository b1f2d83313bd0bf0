package usecase

import (
	"fmt"
	"time"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

// resolveView turns a FeedQuery into the (filter, order) pair executed by
// the store. It never paginates and never executes the query itself.
//
// affinity is the category affinity set of the requesting actor, already
// derived from their like relations; it is only consulted for
// SortPersonalized.
func resolveView(q driftboard.FeedQuery, affinity []driftboard.Category, now time.Time) (domain.Filter, []domain.OrderKey, error) {

	filter := domain.Filter{
		Search:     q.Search,
		Category:   q.Category,
		PublicOnly: true,
	}

	switch q.Sort {
	case driftboard.SortNewest:
		return filter, []domain.OrderKey{
			{Column: domain.OrderCreatedAt, Desc: true},
		}, nil

	case driftboard.SortOldest:
		return filter, []domain.OrderKey{
			{Column: domain.OrderCreatedAt, Desc: false},
		}, nil

	case driftboard.SortMostLiked:
		return filter, []domain.OrderKey{
			{Column: domain.OrderLikeCount, Desc: true},
			{Column: domain.OrderCreatedAt, Desc: true},
		}, nil

	case driftboard.SortMostCommented:
		return filter, []domain.OrderKey{
			{Column: domain.OrderCommentCount, Desc: true},
			{Column: domain.OrderCreatedAt, Desc: true},
		}, nil

	case driftboard.SortTrending:
		if _, ok := driftboard.ParseTrendingPeriod(string(q.Period)); !ok {
			return domain.Filter{}, nil, domain.InvalidQueryError{
				Reason: fmt.Sprintf("unknown trending period %q", q.Period),
			}
		}
		filter.CreatedAfter = q.Period.Window(now)
		return filter, []domain.OrderKey{
			{Column: domain.OrderLikeCount, Desc: true},
			{Column: domain.OrderCreatedAt, Desc: true},
		}, nil

	case driftboard.SortPersonalized:
		// Personalization is an enhancement: anonymous actors and actors
		// with no like history get the plain newest view.
		if q.Actor == "" || len(affinity) == 0 {
			return filter, []domain.OrderKey{
				{Column: domain.OrderCreatedAt, Desc: true},
			}, nil
		}
		return filter, []domain.OrderKey{
			{Column: domain.OrderCategoryBoost, Desc: true, Boost: affinity},
			{Column: domain.OrderCreatedAt, Desc: true},
		}, nil

	default:
		return domain.Filter{}, nil, domain.InvalidQueryError{
			Reason: fmt.Sprintf("unknown sort mode %q", q.Sort),
		}
	}
}
