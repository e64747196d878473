package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-notes-api/internal/application"
	"github.com/oksasatya/go-notes-api/internal/domain/repository"
	"github.com/oksasatya/go-notes-api/internal/interface/middleware"
	"github.com/oksasatya/go-notes-api/pkg/response"
	"github.com/oksasatya/go-notes-api/pkg/validation"
)

type NoteHandler struct {
	Svc    *application.NoteService
	Logger *logrus.Logger
}

func NewNoteHandler(svc *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Svc: svc, Logger: logger}
}

// List handles GET /api/notes?searchTerm=&folderId=&tagId=
func (h *NoteHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	filter := repository.NoteFilter{
		SearchTerm: c.Query("searchTerm"),
		FolderID:   c.Query("folderId"),
		TagID:      c.Query("tagId"),
	}

	notes, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// GetByID handles GET /api/notes/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	n, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, n)
}

// Create handles POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	p, ok := h.bindPayload(c)
	if !ok {
		return
	}

	n, err := h.Svc.Create(c.Request.Context(), userID, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, c.Request.URL.Path+"/"+n.ID, n)
}

// Update handles PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	p, ok := h.bindPayload(c)
	if !ok {
		return
	}

	n, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, n)
}

// Delete handles DELETE /api/notes/:id. Idempotent: 204 whether or not the
// note existed.
func (h *NoteHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindPayload decodes the mutation payload, translating JSON type
// mismatches on known fields into their API messages.
func (h *NoteHandler) bindPayload(c *gin.Context) (application.NotePayload, bool) {
	var p application.NotePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && strings.HasPrefix(ute.Field, "tags") {
			response.Error(c, http.StatusBadRequest, "The tags property must be an array", nil)
			return p, false
		}
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return p, false
	}
	return p, true
}

func (h *NoteHandler) fail(c *gin.Context, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, ve.Message, nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not Found", nil)
	default:
		h.Logger.WithError(err).Error("note operation failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
