package handlers

import (
	"errors"
	"net/http"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/logger"
)

// EvaluationHandler handles evaluation CRUD endpoints
type EvaluationHandler struct {
	repo   contracts.EvaluationRepository
	logger *logger.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(repo contracts.EvaluationRepository, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		repo:   repo,
		logger: log,
	}
}

// Create creates an evaluation
// POST /evaluations
func (h *EvaluationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in contracts.EvaluationCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation, err := h.repo.Create(r.Context(), &in)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create evaluation")
		respondError(w, http.StatusInternalServerError, "Failed to create evaluation")
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// List returns all evaluations
// GET /evaluations
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list evaluations")
		respondError(w, http.StatusInternalServerError, "Failed to list evaluations")
		return
	}

	respondJSON(w, http.StatusOK, evaluations)
}

// Get returns one evaluation
// GET /evaluations/{id}
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, err, id, "Failed to get evaluation")
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// Update applies a partial update
// PUT /evaluations/{id}
func (h *EvaluationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var in contracts.EvaluationUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation, err := h.repo.Update(r.Context(), id, &in)
	if err != nil {
		h.respondRepoError(w, err, id, "Failed to update evaluation")
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// Delete removes an evaluation and its results
// DELETE /evaluations/{id}
func (h *EvaluationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondRepoError(w, err, id, "Failed to delete evaluation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
		"id":      id,
	})
}

func (h *EvaluationHandler) respondRepoError(w http.ResponseWriter, err error, id int64, msg string) {
	if errors.Is(err, contracts.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Evaluation not found")
		return
	}
	h.logger.WithError(err).WithField("id", id).Error(msg)
	respondError(w, http.StatusInternalServerError, msg)
}
