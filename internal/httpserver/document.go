package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/models"
	"github.com/davitkhm/docvault/internal/service"
	"github.com/davitkhm/docvault/internal/util"
)

// DocumentSearcher queries the document index.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Document, error)
}

type DocumentHTTP struct {
	Svc      *service.DocumentService
	Searcher DocumentSearcher
}

func (h *DocumentHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "document_upload")

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded.")
	}
	if file.Header.Get("Content-Type") != "application/pdf" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file type.")
	}

	name := c.FormValue("document_name")
	owner := c.FormValue("owner_name")
	if name == "" || owner == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	}

	src, err := file.Open()
	if err != nil {
		l.Error("upload_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	defer src.Close()

	doc, err := h.Svc.Upload(ctx, service.UploadInput{
		DocumentName: name,
		OwnerName:    owner,
		ContentType:  "application/pdf",
		File:         src,
	})
	if err != nil {
		l.Error("upload_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Document uploaded successfully.",
		"id":            doc.ID,
		"document_name": doc.DocumentName,
		"owner_name":    doc.OwnerName,
		"file_path":     doc.FilePath,
		"upload_date":   doc.UploadDate,
	})
}

func (h *DocumentHTTP) Search(c echo.Context) error {
	if h.Searcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	ctx := c.Request().Context()
	total, docs, err := h.Searcher.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "documents": docs})
}
