package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
)

// Messages affichés en caisse et sur l'agenda ; aucun n'est fatal côté
// serveur, l'opérateur corrige et rejoue.
var businessMessages = map[string]string{
	httperr.CodeValidation:          "Données invalides.",
	httperr.CodeTimeConflict:        "Conflit d'horaire avec un autre rendez-vous.",
	httperr.CodeInsufficientBalance: "Solde insuffisant pour cet instrument.",
	httperr.CodeInvalidInstrument:   "Instrument de paiement invalide ou inactif.",
	httperr.CodeIncompletePayment:   "Le total payé ne couvre pas la note.",
	httperr.CodeExcessAmount:        "Le montant dépasse le restant dû.",
	httperr.CodeInvalidState:        "Opération impossible dans l'état courant.",
	httperr.CodePersistence:         "Erreur d'écriture, réessayez.",
}

// writeBusiness traduit une erreur métier en réponse HTTP. Les erreurs
// non métier tombent sur le code de repli fourni par l'appelant.
func writeBusiness(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, fallbackCode, fallbackMsg)
		return
	}

	msg := businessMessages[code]

	switch code {
	case httperr.CodeValidation:
		httperr.BadRequest(c, code, msg)
	case httperr.CodeTimeConflict:
		httperr.Conflict(c, code, msg)
	case httperr.CodePersistence:
		httperr.Internal(c, code, msg)
	default:
		httperr.UnprocessableEntity(c, code, msg)
	}
}
