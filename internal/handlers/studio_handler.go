package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

type StudioHandler struct {
	db *gorm.DB
}

func NewStudioHandler(db *gorm.DB) *StudioHandler {
	return &StudioHandler{db: db}
}

type UpdateStudioConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	OpenTime          *string `json:"open_time"`
	CloseTime         *string `json:"close_time"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *StudioHandler) GetStudio(c *gin.Context) {
	var studio models.Studio
	if err := h.db.First(&studio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "studio_not_found", "Centre non configuré.")
			return
		}
		httperr.Internal(c, "failed_to_get_studio", "Erreur à la lecture du centre.")
		return
	}

	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) UpdateStudio(c *gin.Context) {
	var studio models.Studio
	if err := h.db.First(&studio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "studio_not_found", "Centre non configuré.")
			return
		}
		httperr.Internal(c, "failed_to_get_studio", "Erreur à la lecture du centre.")
		return
	}

	var req UpdateStudioConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		studio.Name = *req.Name
	}
	if req.Phone != nil {
		studio.Phone = *req.Phone
	}
	if req.Address != nil {
		studio.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuseau horaire inconnu.")
			return
		}
		studio.Timezone = *req.Timezone
	}
	if req.OpenTime != nil {
		if !isValidHM(*req.OpenTime) {
			httperr.BadRequest(c, "invalid_open_time", "Heure d'ouverture invalide (HH:MM).")
			return
		}
		studio.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !isValidHM(*req.CloseTime) {
			httperr.BadRequest(c, "invalid_close_time", "Heure de fermeture invalide (HH:MM).")
			return
		}
		studio.CloseTime = *req.CloseTime
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "L'anticipation minimale doit être nulle ou positive (en minutes).")
			return
		}
		studio.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&studio).Error; err != nil {
		httperr.Internal(c, "failed_to_update_studio", "Erreur à l'enregistrement du centre.")
		return
	}

	c.JSON(http.StatusOK, studio)
}
