package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/infra/database/models"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context) ([]domain.Template, error) {
	var rows []models.Template
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, storeError(err, "template")
	}

	templates := make([]domain.Template, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, domain.Template{
			ID:        row.ID,
			Name:      row.Name,
			MediaURL:  row.MediaURL,
			Category:  driftboard.Category(row.Category),
			CreatedAt: row.CreatedAt,
		})
	}
	return templates, nil
}
