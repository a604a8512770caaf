package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
)

// NoteHandler serves free-form farm notes.
type NoteHandler struct {
	repo   mongodb.NoteRepository
	logger *zap.Logger
}

// NewNoteHandler constructs the HTTP handler adapter.
func NewNoteHandler(repo mongodb.NoteRepository, logger *zap.Logger) *NoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteHandler{repo: repo, logger: logger}
}

type noteRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

// Create adds a note.
func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid note payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	now := time.Now()
	note, err := h.repo.CreateNote(c.Request.Context(), models.Note{
		FarmID:    middleware.FarmID(c),
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.logger.Error("failed creating note", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// Update replaces a note's title and body.
func (h *NoteHandler) Update(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid note payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}

	err = h.repo.UpdateNote(c.Request.Context(), models.Note{
		ID:     oid,
		FarmID: middleware.FarmID(c),
		Title:  req.Title,
		Body:   req.Body,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating note", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update note"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a note.
func (h *NoteHandler) Delete(c *gin.Context) {
	err := h.repo.DeleteNote(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting note", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns the farm's notes, newest first.
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.repo.ListNotes(c.Request.Context(), middleware.FarmID(c))
	if err != nil {
		h.logger.Error("failed listing notes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}
