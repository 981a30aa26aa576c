package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davitkhm/docvault/internal/models"
	"github.com/davitkhm/docvault/internal/repo"
	"github.com/davitkhm/docvault/internal/service"
	"github.com/davitkhm/docvault/internal/tokens"
)

type fakeStore struct {
	keys []string
}

func (f *fakeStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://storage.local/docvault/" + key, nil
}

type testEnv struct {
	t     *testing.T
	e     *echo.Echo
	repo  *repo.GormRepo
	codec *tokens.Codec
	store *fakeStore

	auth  *AuthHTTP
	docs  *DocumentHTTP
	hello *HelloHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Document{}, &models.Message{}))

	r := &repo.GormRepo{DB: db}
	codec := tokens.NewCodec([]byte("test-jwt-secret"))
	store := &fakeStore{}

	return &testEnv{
		t:     t,
		e:     echo.New(),
		repo:  r,
		codec: codec,
		store: store,
		auth:  &AuthHTTP{Svc: &service.AuthService{Repo: r, Codec: codec}},
		docs:  &DocumentHTTP{Svc: &service.DocumentService{Repo: r, Store: store}},
		hello: &HelloHTTP{Svc: &service.HelloService{Repo: r}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	return rec, c
}

type uploadForm struct {
	withFile     bool
	contentType  string
	documentName string
	ownerName    string
}

func (env *testEnv) doUploadRequest(form uploadForm) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if form.withFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="doc.pdf"`)
		h.Set("Content-Type", form.contentType)
		part, err := w.CreatePart(h)
		require.NoError(env.t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(env.t, err)
	}
	if form.documentName != "" {
		require.NoError(env.t, w.WriteField("document_name", form.documentName))
	}
	if form.ownerName != "" {
		require.NoError(env.t, w.WriteField("owner_name", form.ownerName))
	}
	require.NoError(env.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	return rec, c
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he
}
