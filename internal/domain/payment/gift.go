package payment

import (
	"context"
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// ======================================================
// Cartes cadeaux
// ======================================================

// Solde sous lequel une carte fixed est considérée épuisée.
const GiftExhaustedThreshold = 0.01

// GiftHandler applique les règles de vérification et de tirage des
// cartes cadeaux. Le contrôle de solde vit ici, pas dans la caisse :
// ajouter une sorte d'instrument ne touche pas la logique du ledger.
type GiftHandler struct {
	store GiftStore
}

func NewGiftHandler(store GiftStore) *GiftHandler {
	return &GiftHandler{store: store}
}

// Verify résout un code et vérifie qu'il est utilisable : connu, actif,
// non expiré, non épuisé.
func (h *GiftHandler) Verify(ctx context.Context, code string) (*models.GiftCode, error) {
	gift, err := h.store.Lookup(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}

	if gift.Status != models.GiftStatusActive {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}
	if gift.ExpiresAt != nil && gift.ExpiresAt.Before(time.Now()) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}
	if gift.Kind == models.GiftKindFixed && gift.Balance <= GiftExhaustedThreshold {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}

	return gift, nil
}

// Draw débite une carte fixed du montant tiré et rend le nouveau solde.
// Épuisée (≤ 0.01), la carte passe used et son compteur d'usage
// s'incrémente dans tous les cas. Une carte percentage porte un taux,
// jamais décrémenté : elle s'applique en remise, pas en tirage.
func (h *GiftHandler) Draw(ctx context.Context, gift *models.GiftCode, amount float64) (float64, error) {
	if gift.Kind != models.GiftKindFixed {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}
	if amount < 0 {
		return 0, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if amount > gift.Balance+GiftExhaustedThreshold {
		return 0, httperr.ErrBusiness(httperr.CodeInsufficientBalance)
	}

	gift.Balance -= amount
	if gift.Balance <= GiftExhaustedThreshold {
		gift.Balance = 0
		gift.Status = models.GiftStatusUsed
	}
	gift.UsageCount++

	if err := h.store.Update(ctx, gift); err != nil {
		return 0, httperr.ErrBusiness(httperr.CodePersistence)
	}

	return gift.Balance, nil
}
