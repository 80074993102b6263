package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/service"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// EffectiveRates godoc
// @Summary Get effective rates for a job
// @Description Resolves the job's full rate set through the override, template, profile and trade-default layers, with the winning layer recorded per field
// @Tags quotes
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.EffectiveRatesDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/effective-rates [get]
func (h *QuoteHandler) EffectiveRates(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	rates, err := h.quoteService.EffectiveRates(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to resolve effective rates")
		return
	}

	respondJSON(w, http.StatusOK, rates)
}

// MaterialMarkup godoc
// @Summary Get the resolved material markup for a job
// @Description Resolves the markup through resolved rates, profile margin and the user preference, reporting which supplied it
// @Tags quotes
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.MaterialMarkupDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/material-markup [get]
func (h *QuoteHandler) MaterialMarkup(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	markup, err := h.quoteService.MaterialMarkup(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to resolve material markup")
		return
	}

	respondJSON(w, http.StatusOK, markup)
}

// Generate godoc
// @Summary Generate a quote for a job
// @Description Generates a new AI quote from the job's effective rates. Previous quotes on the job are marked stale.
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body domain.GenerateQuoteRequest false "Extra instructions"
// @Success 201 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/quotes [post]
func (h *QuoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.GenerateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Generate(r.Context(), userID, jobID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to generate quote")
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

// Latest godoc
// @Summary Get the latest quote for a job
// @Description Returns the newest quote with its derived estimate range
// @Tags quotes
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/quotes/latest [get]
func (h *QuoteHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	quote, err := h.quoteService.GetLatest(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to get quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// List godoc
// @Summary List quotes for a job
// @Tags quotes
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /jobs/{id}/quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	quotes, err := h.quoteService.ListByJob(r.Context(), userID, jobID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to list quotes")
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}
