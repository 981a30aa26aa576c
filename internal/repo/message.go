package repo

import (
	"context"

	"github.com/davitkhm/docvault/internal/models"
)

func (r *GormRepo) ListMessages(ctx context.Context) ([]string, error) {
	var messages []models.Message
	if err := r.DB.WithContext(ctx).Find(&messages).Error; err != nil {
		return nil, err
	}
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Content
	}
	return out, nil
}
