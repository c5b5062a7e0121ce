package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httpresp"
	"github.com/ApollonSMK/MEXperience-sub000/internal/infra/repository"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// ======================================================
// CARTES CADEAUX
// ======================================================

type GiftHandler struct {
	repo    *repository.GiftGormRepository
	handler *payment.GiftHandler
	audit   *audit.Dispatcher
}

func NewGiftHandler(
	repo *repository.GiftGormRepository,
	handler *payment.GiftHandler,
	auditor *audit.Dispatcher,
) *GiftHandler {
	return &GiftHandler{
		repo:    repo,
		handler: handler,
		audit:   auditor,
	}
}

type CreateGiftRequest struct {
	Kind string `json:"kind" binding:"required,oneof=fixed percentage"`

	// Solde en euros (fixed) ou taux de remise (percentage).
	Value float64 `json:"value" binding:"required,gt=0"`

	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *GiftHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Kind == models.GiftKindPercentage && req.Value > 100 {
		httperr.BadRequest(c, "invalid_rate", "Un taux de remise ne dépasse pas 100.")
		return
	}

	gift := &models.GiftCode{
		Code:           giftCode(),
		Kind:           req.Kind,
		InitialBalance: req.Value,
		Balance:        req.Value,
		Status:         models.GiftStatusActive,
		ExpiresAt:      req.ExpiresAt,
	}

	if err := h.repo.Create(c.Request.Context(), gift); err != nil {
		httperr.Internal(c, "failed_to_create_gift", "Erreur à la création de la carte.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "gift_code_created",
		Entity:   "gift_code",
		EntityID: &gift.ID,
		Metadata: map[string]any{"kind": gift.Kind, "value": req.Value},
	})

	c.JSON(http.StatusCreated, gift)
}

// Verify résout un code saisi en caisse et rend ce que l'instrument
// vaut encore, sans rien débiter.
func (h *GiftHandler) Verify(c *gin.Context) {
	code := c.Param("code")

	gift, err := h.handler.Verify(c.Request.Context(), code)
	if err != nil {
		writeBusiness(c, err, "gift_verify_failed", "Erreur à la vérification de la carte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":        gift.Code,
		"kind":        gift.Kind,
		"balance":     gift.Balance,
		"usage_count": gift.UsageCount,
		"expires_at":  gift.ExpiresAt,
	})
}

func (h *GiftHandler) List(c *gin.Context) {
	gifts, err := h.repo.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_gifts", "Erreur à la lecture des cartes.")
		return
	}

	httpresp.List(c, gifts)
}

// giftCode produit un code court à lire au téléphone : GC- et huit
// caractères hexadécimaux.
func giftCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "GC-" + raw[:8]
}
