package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httpresp"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, auditor *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: auditor}
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Order("created_at DESC")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client introuvable.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// MINUTES D'ABONNEMENT
// ======================================================

type TopUpMinutesRequest struct {
	Minutes int     `json:"minutes" binding:"required,gt=0"`
	Plan    *string `json:"plan"`
}

// TopUpMinutes recharge le solde de minutes et active l'abonnement si
// un plan accompagne la recharge.
func (h *ClientHandler) TopUpMinutes(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client introuvable.")
		return
	}

	var req TopUpMinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	client.MinutesBalance += req.Minutes
	if req.Plan != nil && *req.Plan != "" {
		client.SubscriptionPlan = *req.Plan
		client.SubscriptionActive = true
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erreur à l'enregistrement du client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "minutes_topped_up",
		Entity:   "client",
		EntityID: &client.ID,
		Metadata: map[string]any{
			"minutes":     req.Minutes,
			"new_balance": client.MinutesBalance,
		},
	})

	c.JSON(http.StatusOK, client)
}
