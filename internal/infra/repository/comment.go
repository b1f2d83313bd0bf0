package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/infra/database/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Append(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	row := models.Comment{
		ContentID: comment.ContentID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
	}

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.Comment{}, storeError(err, "comment")
	}

	return toComment(row), nil
}

func (r *CommentRepository) List(ctx context.Context, contentID string) ([]domain.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError(err, "comment")
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, toComment(row))
	}
	return comments, nil
}

func toComment(row models.Comment) domain.Comment {
	return domain.Comment{
		ID:        row.ID,
		ContentID: row.ContentID,
		AuthorID:  row.AuthorID,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}
}
