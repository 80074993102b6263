package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/repository"
	"github.com/tradequote/quoting-api/internal/service"
	"go.uber.org/zap"
)

type JobHandler struct {
	jobService *service.JobService
	logger     *zap.Logger
}

func NewJobHandler(jobService *service.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// List godoc
// @Summary List jobs
// @Description Returns the authenticated user's jobs, newest first, with optional filtering
// @Tags jobs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by job status"
// @Param tradeType query string false "Filter by trade type"
// @Param search query string false "Search in title, client name and site address"
// @Success 200 {object} domain.JobListResponse
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	filters := &repository.JobFilters{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.JobStatus(raw)
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("tradeType"); raw != "" {
		trade := domain.TradeType(raw)
		filters.TradeType = &trade
	}

	result, err := h.jobService.List(r.Context(), userID, page, pageSize, filters)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to list jobs")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create a job
// @Description Creates a new draft job with optional rate overrides and template binding
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body domain.CreateJobRequest true "Job to create"
// @Success 201 {object} domain.JobDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	job, err := h.jobService.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

// Get godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.JobDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to get job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Update godoc
// @Summary Update a job
// @Description Replaces the job's details and overrides. A change to any rate field or the template binding marks existing quotes stale.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param job body domain.UpdateJobRequest true "Updated job"
// @Success 200 {object} domain.JobDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	job, err := h.jobService.Update(r.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to update job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Delete godoc
// @Summary Delete a job
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.jobService.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, h.logger, err, "failed to delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
