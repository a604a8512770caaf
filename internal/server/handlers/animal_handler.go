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

// AnimalHandler serves the livestock inventory and medical history.
type AnimalHandler struct {
	repo   mongodb.AnimalRepository
	logger *zap.Logger
}

// NewAnimalHandler constructs the HTTP handler adapter.
func NewAnimalHandler(repo mongodb.AnimalRepository, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{repo: repo, logger: logger}
}

type animalRequest struct {
	Tag     string `json:"tag" binding:"required"`
	Species string `json:"species" binding:"required,oneof=cow buffalo"`
	Breed   string `json:"breed"`
	BornOn  string `json:"born_on"`
	Status  string `json:"status" binding:"required"`
}

// Create adds an animal to the inventory.
func (h *AnimalHandler) Create(c *gin.Context) {
	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.repo.CreateAnimal(c.Request.Context(), models.Animal{
		FarmID:    middleware.FarmID(c),
		Tag:       req.Tag,
		Species:   models.Species(req.Species),
		Breed:     req.Breed,
		BornOn:    req.BornOn,
		Status:    req.Status,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed creating animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create animal"})
		return
	}

	c.JSON(http.StatusCreated, animal)
}

// Update replaces the editable fields of an animal.
func (h *AnimalHandler) Update(c *gin.Context) {
	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}

	err = h.repo.UpdateAnimal(c.Request.Context(), models.Animal{
		ID:      oid,
		FarmID:  middleware.FarmID(c),
		Tag:     req.Tag,
		Species: models.Species(req.Species),
		Breed:   req.Breed,
		BornOn:  req.BornOn,
		Status:  req.Status,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update animal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes an animal from the inventory.
func (h *AnimalHandler) Delete(c *gin.Context) {
	err := h.repo.DeleteAnimal(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete animal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Get fetches one animal.
func (h *AnimalHandler) Get(c *gin.Context) {
	animal, err := h.repo.GetAnimal(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load animal"})
		return
	}

	c.JSON(http.StatusOK, animal)
}

// List returns the farm's animal inventory.
func (h *AnimalHandler) List(c *gin.Context) {
	animals, err := h.repo.ListAnimals(c.Request.Context(), middleware.FarmID(c))
	if err != nil {
		h.logger.Error("failed listing animals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list animals"})
		return
	}

	c.JSON(http.StatusOK, animals)
}

type medicalRequest struct {
	Date     string `json:"date" binding:"required"`
	Ailment  string `json:"ailment" binding:"required"`
	Medicine string `json:"medicine"`
	Cost     string `json:"cost"`
	Vet      string `json:"vet"`
}

// AddMedicalRecord appends a treatment entry to an animal's history.
func (h *AnimalHandler) AddMedicalRecord(c *gin.Context) {
	var req medicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid medical payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	farmID := middleware.FarmID(c)
	animalID := c.Param("id")

	// The animal must exist before treatment history can attach to it.
	if _, err := h.repo.GetAnimal(c.Request.Context(), farmID, animalID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
			return
		}
		h.logger.Error("failed loading animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load animal"})
		return
	}

	record, err := h.repo.CreateMedicalRecord(c.Request.Context(), models.MedicalRecord{
		FarmID:    farmID,
		AnimalID:  animalID,
		Date:      req.Date,
		Ailment:   req.Ailment,
		Medicine:  req.Medicine,
		Cost:      req.Cost,
		Vet:       req.Vet,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed creating medical record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create medical record"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListMedicalRecords returns an animal's treatment history.
func (h *AnimalHandler) ListMedicalRecords(c *gin.Context) {
	records, err := h.repo.ListMedicalRecords(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing medical records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list medical records"})
		return
	}

	c.JSON(http.StatusOK, records)
}
