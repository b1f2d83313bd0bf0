package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/infra/database/models"
)

type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Toggle flips the (actor, content, kind) relation in one transaction.
//
// The insert runs with OnConflict-DoNothing against the composite primary
// key: zero rows affected means the relation was already active, so the
// toggle deletes it instead. Two concurrent toggles of the same tuple
// therefore resolve at the constraint, not in application memory.
//
// For likes the relation rows are recounted inside the same transaction and
// the result written into the content's denormalized counter. The relation
// set is the source of truth; recounting on every toggle self-heals any
// drift and can never produce a negative counter.
func (r *EngagementRepository) Toggle(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (bool, int64, error) {

	var active bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var content models.Content
		err := tx.Select("id").Where("id = ?", contentID).Take(&content).Error
		if err != nil {
			return storeError(err, "content")
		}

		record := models.Engagement{
			ActorID:   actor,
			ContentID: contentID,
			Kind:      string(kind),
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if res.Error != nil {
			return storeError(res.Error, "engagement")
		}

		if res.RowsAffected == 0 {
			err = tx.Where("actor_id = ? AND content_id = ? AND kind = ?", actor, contentID, string(kind)).
				Delete(&models.Engagement{}).Error
			if err != nil {
				return storeError(err, "engagement")
			}
			active = false
		} else {
			active = true
		}

		err = tx.Model(&models.Engagement{}).
			Where("content_id = ? AND kind = ?", contentID, string(kind)).
			Count(&count).Error
		if err != nil {
			return storeError(err, "engagement")
		}

		if kind == driftboard.KindLike {
			err = tx.Model(&models.Content{}).
				Where("id = ?", contentID).
				UpdateColumn("like_count", count).Error
			if err != nil {
				return storeError(err, "content")
			}
		}

		return nil
	})

	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

func (r *EngagementRepository) Has(ctx context.Context, actor, contentID string, kind driftboard.EngagementKind) (bool, error) {

	var contentCount int64
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", contentID).
		Count(&contentCount).Error
	if err != nil {
		return false, storeError(err, "content")
	}
	if contentCount == 0 {
		return false, domain.NotFoundError{Resource: "content"}
	}

	var n int64
	err = r.db.WithContext(ctx).Model(&models.Engagement{}).
		Where("actor_id = ? AND content_id = ? AND kind = ?", actor, contentID, string(kind)).
		Count(&n).Error
	if err != nil {
		return false, storeError(err, "engagement")
	}
	return n > 0, nil
}

func (r *EngagementRepository) Count(ctx context.Context, contentID string, kind driftboard.EngagementKind) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Engagement{}).
		Where("content_id = ? AND kind = ?", contentID, string(kind)).
		Count(&n).Error
	if err != nil {
		return 0, storeError(err, "engagement")
	}
	return n, nil
}

func (r *EngagementRepository) ListContentIDs(ctx context.Context, actor string, kind driftboard.EngagementKind) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Engagement{}).
		Where("actor_id = ? AND kind = ?", actor, string(kind)).
		Order("created_at DESC").
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, storeError(err, "engagement")
	}
	return ids, nil
}

func (r *EngagementRepository) ActiveSet(ctx context.Context, actor string, contentIDs []string, kind driftboard.EngagementKind) (map[string]bool, error) {
	result := make(map[string]bool, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Engagement{}).
		Where("actor_id = ? AND kind = ? AND content_id IN ?", actor, string(kind), contentIDs).
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, storeError(err, "engagement")
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// storeError translates gorm errors into the domain taxonomy: missing rows
// become NotFound, everything else is a transient store failure.
func storeError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.StoreUnavailableError{Cause: err}
}
