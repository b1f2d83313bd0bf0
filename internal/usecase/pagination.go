package usecase

import (
	"context"

	"github.com/kagari-dev/driftboard"
)

// Paginate turns a (page, pageSize) request into a bounded, clamped window
// over the injected count and fetch primitives.
//
// A request past the last page is silently clamped to the last page rather
// than rejected, so callers holding stale page state after the underlying
// set shrank never see a hard error. When the set is empty the fetch is
// never invoked.
func Paginate[T any](
	ctx context.Context,
	page, pageSize int,
	count func(ctx context.Context) (int64, error),
	fetch func(ctx context.Context, offset, limit int) ([]T, error),
) (driftboard.PageResult[T], error) {

	total, err := count(ctx)
	if err != nil {
		return driftboard.PageResult[T]{}, err
	}

	if total == 0 {
		return driftboard.PageResult[T]{
			Items:      []T{},
			Total:      0,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: 0,
		}, nil
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize

	items, err := fetch(ctx, offset, pageSize)
	if err != nil {
		return driftboard.PageResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	return driftboard.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
