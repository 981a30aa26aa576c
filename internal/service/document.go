package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davitkhm/docvault/internal/events"
	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/models"
	"github.com/davitkhm/docvault/internal/repo"
)

var ErrStorageUnavailable = errors.New("object storage is not configured")

// ObjectStore is the bucket the uploaded files land in. Put returns the
// public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// DocumentIndexer mirrors a stored document into the search index.
type DocumentIndexer interface {
	IndexDocument(ctx context.Context, doc *models.Document) error
}

type DocumentService struct {
	Repo   *repo.GormRepo
	Store  ObjectStore
	Index  DocumentIndexer
	Events events.Publisher
}

type UploadInput struct {
	DocumentName string
	OwnerName    string
	ContentType  string
	File         io.Reader
}

// Upload puts the file into the bucket under a sanitized unique key and
// persists the document record. Indexing and event publishing are
// best-effort.
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	l := logging.FromContext(ctx).With("svc", "document.upload")

	if s.Store == nil {
		return nil, ErrStorageUnavailable
	}

	now := time.Now()
	key := fmt.Sprintf("%s_%s_%d.pdf",
		sanitizeName(in.OwnerName),
		sanitizeName(in.DocumentName),
		now.UnixMilli(),
	)

	url, err := s.Store.Put(ctx, key, in.ContentType, in.File)
	if err != nil {
		l.Error("upload_failed", "key", key, "error", err)
		return nil, err
	}

	doc := models.Document{
		ID:           uuid.NewString(),
		DocumentName: in.DocumentName,
		OwnerName:    in.OwnerName,
		FilePath:     url,
		UploadDate:   now,
	}

	if err := s.Repo.CreateDocument(ctx, &doc); err != nil {
		l.Error("upload_failed", "key", key, "error", err)
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.IndexDocument(ctx, &doc); err != nil {
			l.Error("index_failed", "document_id", doc.ID, "error", err)
		}
	}

	s.publishDocumentEvent(ctx, doc.ID, map[string]any{
		"type":          "document_uploaded",
		"document_id":   doc.ID,
		"document_name": doc.DocumentName,
		"owner_name":    doc.OwnerName,
	})

	return &doc, nil
}

// sanitizeName collapses whitespace runs into dashes so the storage key stays
// a single clean path segment.
func sanitizeName(s string) string {
	return strings.Join(strings.Fields(s), "-")
}

func (s *DocumentService) publishDocumentEvent(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Events.Publish(pctx, events.TopicDocumentEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicDocumentEvents, "error", err)
	}
}
