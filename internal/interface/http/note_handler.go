package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/notesapp/notes-api/internal/application"
	"github.com/notesapp/notes-api/internal/interface/middleware"
	"github.com/notesapp/notes-api/pkg/response"
)

type NoteHandler struct {
	Service *application.NoteService
	Logger  *logrus.Logger
}

func NewNoteHandler(service *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Service: service, Logger: logger}
}

type notePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sharePayload struct {
	SharedWithUserID string `json:"sharedWithUserId"`
}

func callerID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// List GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.Service.List(c.Request.Context(), callerID(c))
	if err != nil {
		response.ServerError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Get GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	n, err := h.Service.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// Create POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req notePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Incomplete data.")
		return
	}
	n, err := h.Service.Create(c.Request.Context(), callerID(c), req.Title, req.Body)
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// Update PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	var req notePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Incomplete data.")
		return
	}
	n, err := h.Service.Update(c.Request.Context(), callerID(c), c.Param("id"), req.Title, req.Body)
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": n.Title + " updated"})
}

// Delete DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Share POST /api/notes/:id/share
func (h *NoteHandler) Share(c *gin.Context) {
	var req sharePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Incomplete data.")
		return
	}
	n, err := h.Service.Share(c.Request.Context(), callerID(c), c.Param("id"), req.SharedWithUserID)
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": n.Title + " shared"})
}

// Search GET /api/search?q=
func (h *NoteHandler) Search(c *gin.Context) {
	notes, err := h.Service.Search(c.Request.Context(), callerID(c), c.Query("q"))
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) writeNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidNoteID):
		response.BadRequest(c, "Invalid note id.")
	case errors.Is(err, application.ErrInvalidUserID):
		response.BadRequest(c, "Invalid user id.")
	case errors.Is(err, application.ErrTitleRequired):
		response.BadRequest(c, "Incomplete data.")
	case errors.Is(err, application.ErrDuplicateTitle):
		response.BadRequest(c, "Duplicate title.")
	case errors.Is(err, application.ErrSelfShare):
		response.BadRequest(c, "Cannot share with same user.")
	case errors.Is(err, application.ErrAlreadyShared):
		response.BadRequest(c, "Already shared with this user.")
	case errors.Is(err, application.ErrForbidden):
		response.Forbidden(c)
	case errors.Is(err, application.ErrNoteNotFound),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrNoResults):
		response.NotFound(c)
	default:
		response.ServerError(c, h.Logger, err)
	}
}
