package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/service"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Get godoc
// @Summary Get the business profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.BusinessProfileDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to get business profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Upsert godoc
// @Summary Create or replace the business profile
// @Description Saves the user's business profile. Existing quotes are marked stale since the profile is a layer of the rate chain.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body domain.UpsertBusinessProfileRequest true "Profile to save"
// @Success 200 {object} domain.BusinessProfileDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req domain.UpsertBusinessProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to save business profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// ListPreferences godoc
// @Summary List preferences
// @Tags preferences
// @Produce json
// @Success 200 {array} domain.PreferenceDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /preferences [get]
func (h *ProfileHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	prefs, err := h.profileService.ListPreferences(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to list preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// SetMaterialMarkup godoc
// @Summary Set the material markup preference
// @Description Stores the fallback material markup percentage used when neither the job's rates nor the profile margin supply one. Existing quotes are marked stale.
// @Tags preferences
// @Accept json
// @Produce json
// @Param preference body domain.SetMaterialMarkupRequest true "Markup percentage"
// @Success 200 {object} domain.PreferenceDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /preferences/material-markup [put]
func (h *ProfileHandler) SetMaterialMarkup(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req domain.SetMaterialMarkupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.profileService.SetMaterialMarkupPreference(r.Context(), userID, req.Value); err != nil {
		handleServiceError(w, h.logger, err, "failed to save markup preference")
		return
	}

	respondJSON(w, http.StatusOK, domain.PreferenceDTO{
		Key:   domain.PreferenceMaterialMarkup,
		Value: strconv.FormatFloat(req.Value, 'f', -1, 64),
	})
}
