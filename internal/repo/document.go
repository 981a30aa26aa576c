package repo

import (
	"context"

	"github.com/davitkhm/docvault/internal/models"
)

func (r *GormRepo) CreateDocument(ctx context.Context, d *models.Document) error {
	return r.DB.WithContext(ctx).Create(d).Error
}
