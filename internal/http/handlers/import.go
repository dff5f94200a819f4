package handlers

import (
	"errors"
	"io"
	"net/http"

	"spinadmin/internal/importer"
	"spinadmin/internal/repo"
	"spinadmin/internal/template"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes caps import file size at 10 MB
const maxUploadBytes = 10 << 20

// ImportHandler handles the bulk location import flow: file upload,
// review, commit and the downloadable template
type ImportHandler struct {
	importService *importer.Service
	campaignRepo  *repo.CampaignRepository
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *importer.Service, campaignRepo *repo.CampaignRepository) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		campaignRepo:  campaignRepo,
	}
}

// Upload accepts a CSV or XLSX file, parses it and resolves campaign
// references, returning a reviewable session. Nothing is persisted
// until the session is committed.
func (h *ImportHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}

	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "File too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read file"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	session, err := h.importService.ParseUpload(c.Request().Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		var parseErr *importer.ParseError
		var resolutionErr *importer.ResolutionError
		switch {
		case errors.As(err, &parseErr), errors.As(err, &resolutionErr), errors.Is(err, importer.ErrNoRows):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process file"})
		}
	}

	return c.JSON(http.StatusOK, session)
}

// Get returns an import session for review
func (h *ImportHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	session, err := h.importService.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, session)
}

// Commit submits a reviewed session's rows as one batch and returns the
// per-row outcome
func (h *ImportHandler) Commit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	outcome, err := h.importService.Commit(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, importer.ErrSubmitInProgress), errors.Is(err, importer.ErrAlreadySubmitted):
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to submit locations"})
		}
	}

	return c.JSON(http.StatusOK, outcome)
}

// Discard drops an import session without committing it
func (h *ImportHandler) Discard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	h.importService.Discard(id)
	return c.NoContent(http.StatusNoContent)
}

// Template generates the XLSX import template, with a dropdown listing
// the campaigns that exist at download time
func (h *ImportHandler) Template(c echo.Context) error {
	directory, err := h.campaignRepo.CampaignDirectory(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load campaigns"})
	}

	data, err := template.Generate(directory)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate template"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+template.FileName+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
