package handlers

import (
	"errors"
	"net/http"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// ResultHandler handles reviewer result CRUD endpoints
type ResultHandler struct {
	repo   contracts.ResultRepository
	logger *logger.Logger
}

// NewResultHandler creates a new result handler
func NewResultHandler(repo contracts.ResultRepository, log *logger.Logger) *ResultHandler {
	return &ResultHandler{
		repo:   repo,
		logger: log,
	}
}

// Create stores a result for an existing evaluation
// POST /results
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in contracts.ResultCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.repo.Create(r.Context(), &in)
	if err != nil {
		if errors.Is(err, contracts.ErrInvalidReference) {
			respondError(w, http.StatusBadRequest, "Evaluation does not exist")
			return
		}
		h.logger.WithError(err).WithField("evaluation_id", in.EvaluationID).Error("Failed to create result")
		respondError(w, http.StatusInternalServerError, "Failed to create result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// List returns all results
// GET /results
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list results")
		respondError(w, http.StatusInternalServerError, "Failed to list results")
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// Get returns one result
// GET /results/{id}
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, err, id, "Failed to get result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Update applies a partial update
// PUT /results/{id}
func (h *ResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var in contracts.ResultUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.repo.Update(r.Context(), id, &in)
	if err != nil {
		h.respondRepoError(w, err, id, "Failed to update result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Delete removes a result
// DELETE /results/{id}
func (h *ResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondRepoError(w, err, id, "Failed to delete result")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
		"id":      id,
	})
}

func (h *ResultHandler) respondRepoError(w http.ResponseWriter, err error, id int64, msg string) {
	if errors.Is(err, contracts.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Result not found")
		return
	}
	h.logger.WithError(err).WithField("id", id).Error(msg)
	respondError(w, http.StatusInternalServerError, msg)
}
