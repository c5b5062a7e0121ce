package payment

import (
	"context"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
)

// ======================================================
// Minutes d'abonnement
// ======================================================

// MinutesBalance est le résultat de vérification d'un profil client.
type MinutesBalance struct {
	Balance            int  `json:"balance"`
	ActiveSubscription bool `json:"active_subscription"`
}

type MinutesHandler struct {
	store ClientStore
}

func NewMinutesHandler(store ClientStore) *MinutesHandler {
	return &MinutesHandler{store: store}
}

// Verify expose le solde de minutes et l'état d'abonnement du client.
func (h *MinutesHandler) Verify(ctx context.Context, clientID uint) (*MinutesBalance, error) {
	client, err := h.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}

	return &MinutesBalance{
		Balance:            client.MinutesBalance,
		ActiveSubscription: client.SubscriptionActive,
	}, nil
}

// Draw débite le solde de minutes du client. Refusé si l'abonnement
// n'est pas actif ou si le solde ne couvre pas la durée demandée : le
// ledger reste intact, l'appelant propose un autre instrument ou une
// recharge.
func (h *MinutesHandler) Draw(ctx context.Context, clientID uint, minutes int) (int, error) {
	if minutes <= 0 {
		return 0, httperr.ErrBusiness(httperr.CodeValidation)
	}

	client, err := h.store.GetClient(ctx, clientID)
	if err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}
	if !client.SubscriptionActive {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidInstrument)
	}
	if minutes > client.MinutesBalance {
		return 0, httperr.ErrBusiness(httperr.CodeInsufficientBalance)
	}

	newBalance := client.MinutesBalance - minutes
	if err := h.store.UpdateMinutes(ctx, clientID, newBalance); err != nil {
		return 0, httperr.ErrBusiness(httperr.CodePersistence)
	}

	return newBalance, nil
}
