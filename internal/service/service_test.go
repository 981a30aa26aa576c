package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davitkhm/docvault/internal/models"
	"github.com/davitkhm/docvault/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Document{}, &models.Message{}))

	return &repo.GormRepo{DB: db}
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

type fakePublisher struct {
	published []publishedEvent
	fail      bool
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, event any) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}
