package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tradequote/quoting-api/internal/service"
	"go.uber.org/zap"
)

type JobPackHandler struct {
	packService *service.JobPackService
	logger      *zap.Logger
}

func NewJobPackHandler(packService *service.JobPackService, logger *zap.Logger) *JobPackHandler {
	return &JobPackHandler{
		packService: packService,
		logger:      logger,
	}
}

// Generate godoc
// @Summary Generate a job pack
// @Description Renders a printable pack document from the job's latest quote and resolved rates and files it in storage
// @Tags job-packs
// @Produce json
// @Param id path string true "Job ID"
// @Success 201 {object} domain.JobPackDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/packs [post]
func (h *JobPackHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	pack, err := h.packService.Generate(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to generate job pack")
		return
	}

	respondJSON(w, http.StatusCreated, pack)
}

// List godoc
// @Summary List job packs
// @Tags job-packs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} domain.JobPackDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/packs [get]
func (h *JobPackHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	packs, err := h.packService.List(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to list job packs")
		return
	}

	respondJSON(w, http.StatusOK, packs)
}

// Download godoc
// @Summary Download a job pack
// @Tags job-packs
// @Produce plain
// @Param packId path string true "Pack ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /packs/{packId}/download [get]
func (h *JobPackHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	packID, ok := pathUUID(w, chi.URLParam(r, "packId"))
	if !ok {
		return
	}

	pack, rdr, err := h.packService.Download(r.Context(), userID, packID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to download job pack")
		return
	}
	defer rdr.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pack.FileName))
	if pack.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", pack.Size))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rdr); err != nil {
		h.logger.Warn("job pack stream interrupted",
			zap.String("pack_id", packID.String()),
			zap.Error(err),
		)
	}
}
