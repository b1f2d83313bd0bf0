package repository

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/infra/database/models"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	var total int64
	err := scopeFilter(r.db.WithContext(ctx).Model(&models.Content{}), filter).
		Count(&total).Error
	if err != nil {
		return 0, storeError(err, "content")
	}
	return total, nil
}

func (r *ContentRepository) FetchPage(ctx context.Context, filter domain.Filter, order []domain.OrderKey, offset, limit int) ([]driftboard.ContentItem, error) {

	q := scopeFilter(r.db.WithContext(ctx).Model(&models.Content{}), filter)
	q = scopeOrder(q, order)

	var rows []models.Content
	err := q.Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, storeError(err, "content")
	}

	items := make([]driftboard.ContentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toContentItem(row))
	}
	return items, nil
}

func (r *ContentRepository) Get(ctx context.Context, id string) (driftboard.ContentItem, error) {
	var row models.Content
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return driftboard.ContentItem{}, storeError(err, "content")
	}
	return toContentItem(row), nil
}

func (r *ContentRepository) Create(ctx context.Context, item driftboard.ContentItem) error {
	row, err := toContentModel(item)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return storeError(err, "content")
	}
	return nil
}

// Delete removes the row; engagement records and comments referencing it go
// with it via the FK cascade, so counters are never orphaned.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Content{}, "id = ?", id)
	if res.Error != nil {
		return storeError(res.Error, "content")
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "content"}
	}
	return nil
}

// AdjustCounter shifts a denormalized counter by delta, flooring at zero.
func (r *ContentRepository) AdjustCounter(ctx context.Context, id string, field domain.CounterField, delta int64) error {

	var column string
	switch field {
	case domain.CounterLikes:
		column = "like_count"
	case domain.CounterComments:
		column = "comment_count"
	default:
		return domain.InvalidQueryError{Reason: "unknown counter field"}
	}

	res := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta))
	if res.Error != nil {
		return storeError(res.Error, "content")
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "content"}
	}
	return nil
}

func (r *ContentRepository) DistinctCategories(ctx context.Context, ids []string) ([]driftboard.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var raw []string
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Distinct("category").
		Where("id IN ?", ids).
		Pluck("category", &raw).Error
	if err != nil {
		return nil, storeError(err, "content")
	}

	categories := make([]driftboard.Category, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, driftboard.Category(c))
	}
	return categories, nil
}

func scopeFilter(q *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter.PublicOnly {
		q = q.Where("public = ?", true)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", string(*filter.Category))
	}
	if filter.OwnerID != "" {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return q
}

// scopeOrder translates the ranking engine's ordering key sequence into a
// single ORDER BY expression. The category boost becomes a two-tier CASE
// bucket ahead of the remaining keys.
func scopeOrder(q *gorm.DB, order []domain.OrderKey) *gorm.DB {
	if len(order) == 0 {
		return q
	}

	fragments := make([]string, 0, len(order))
	vars := []any{}

	for _, key := range order {
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}

		switch key.Column {
		case domain.OrderCreatedAt:
			fragments = append(fragments, "created_at "+direction)
		case domain.OrderLikeCount:
			fragments = append(fragments, "like_count "+direction)
		case domain.OrderCommentCount:
			fragments = append(fragments, "comment_count "+direction)
		case domain.OrderCategoryBoost:
			boost := make([]string, 0, len(key.Boost))
			for _, c := range key.Boost {
				boost = append(boost, string(c))
			}
			fragments = append(fragments, "CASE WHEN category IN (?) THEN 1 ELSE 0 END "+direction)
			vars = append(vars, boost)
		}
	}

	return q.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                strings.Join(fragments, ", "),
			Vars:               vars,
			WithoutParentheses: true,
		},
	})
}

func toContentItem(row models.Content) driftboard.ContentItem {
	var tags []string
	if row.Tags != "" {
		// tags were serialized by toContentModel; a decode failure just
		// yields no tags
		_ = json.Unmarshal([]byte(row.Tags), &tags)
	}

	return driftboard.ContentItem{
		ID:           row.ID,
		Title:        row.Title,
		MediaURL:     row.MediaURL,
		Description:  row.Description,
		Category:     driftboard.Category(row.Category),
		Tags:         tags,
		OwnerID:      row.OwnerID,
		OwnerName:    row.OwnerName,
		Public:       row.Public,
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
		CreatedAt:    row.CreatedAt,
	}
}

func toContentModel(item driftboard.ContentItem) (models.Content, error) {
	tags := ""
	if len(item.Tags) > 0 {
		serialized, err := json.Marshal(item.Tags)
		if err != nil {
			return models.Content{}, err
		}
		tags = string(serialized)
	}

	return models.Content{
		ID:           item.ID,
		Title:        item.Title,
		MediaURL:     item.MediaURL,
		Description:  item.Description,
		Category:     string(item.Category),
		Tags:         tags,
		OwnerID:      item.OwnerID,
		OwnerName:    item.OwnerName,
		Public:       item.Public,
		LikeCount:    item.LikeCount,
		CommentCount: item.CommentCount,
		CreatedAt:    item.CreatedAt,
	}, nil
}
