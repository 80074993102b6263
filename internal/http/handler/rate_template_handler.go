package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/service"
	"go.uber.org/zap"
)

type RateTemplateHandler struct {
	templateService *service.RateTemplateService
	logger          *zap.Logger
}

func NewRateTemplateHandler(templateService *service.RateTemplateService, logger *zap.Logger) *RateTemplateHandler {
	return &RateTemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// List godoc
// @Summary List rate templates
// @Description Returns the user's rate templates, default first
// @Tags rate-templates
// @Produce json
// @Param tradeType query string false "Filter by trade type"
// @Success 200 {array} domain.RateTemplateDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates [get]
func (h *RateTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var tradeFilter *domain.TradeType
	if raw := r.URL.Query().Get("tradeType"); raw != "" {
		tt := domain.TradeType(raw)
		tradeFilter = &tt
	}

	templates, err := h.templateService.List(r.Context(), userID, tradeFilter)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to list rate templates")
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

// Create godoc
// @Summary Create a rate template
// @Tags rate-templates
// @Accept json
// @Produce json
// @Param template body domain.CreateRateTemplateRequest true "Template to create"
// @Success 201 {object} domain.RateTemplateDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates [post]
func (h *RateTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req domain.CreateRateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	tpl, err := h.templateService.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to create rate template")
		return
	}

	respondJSON(w, http.StatusCreated, tpl)
}

// Get godoc
// @Summary Get a rate template
// @Tags rate-templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} domain.RateTemplateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates/{id} [get]
func (h *RateTemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	tpl, err := h.templateService.GetByID(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to get rate template")
		return
	}

	respondJSON(w, http.StatusOK, tpl)
}

// Update godoc
// @Summary Update a rate template
// @Description Updates the template's values. Quotes on jobs bound to it are marked stale.
// @Tags rate-templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body domain.UpdateRateTemplateRequest true "Updated template"
// @Success 200 {object} domain.RateTemplateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates/{id} [put]
func (h *RateTemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.UpdateRateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	tpl, err := h.templateService.Update(r.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to update rate template")
		return
	}

	respondJSON(w, http.StatusOK, tpl)
}

// SetDefault godoc
// @Summary Set the default rate template
// @Description Marks the template as the user's default, clearing the flag on any other
// @Tags rate-templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} domain.RateTemplateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates/{id}/default [put]
func (h *RateTemplateHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	tpl, err := h.templateService.SetDefault(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to set default template")
		return
	}

	respondJSON(w, http.StatusOK, tpl)
}

// Delete godoc
// @Summary Delete a rate template
// @Description Deletes the template. Jobs bound to it are detached and their quotes marked stale.
// @Tags rate-templates
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /rate-templates/{id} [delete]
func (h *RateTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.templateService.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, h.logger, err, "failed to delete rate template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
