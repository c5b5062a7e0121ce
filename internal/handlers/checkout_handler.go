package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/checkout"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	checkoutuc "github.com/ApollonSMK/MEXperience-sub000/internal/usecase/checkout"
)

// ======================================================
// CAISSE
// ======================================================

type CheckoutHandler struct {
	sessions *checkoutuc.Registry
	open     *checkoutuc.OpenCheckout
	settle   *checkoutuc.SettleCheckout

	gifts   *payment.GiftHandler
	minutes *payment.MinutesHandler
}

func NewCheckoutHandler(
	sessions *checkoutuc.Registry,
	open *checkoutuc.OpenCheckout,
	settle *checkoutuc.SettleCheckout,
	gifts *payment.GiftHandler,
	minutes *payment.MinutesHandler,
) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		open:     open,
		settle:   settle,
		gifts:    gifts,
		minutes:  minutes,
	}
}

// --------- Requests ---------

type OpenCheckoutRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

type AddLineRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	DurationMin int     `json:"duration_min"`
}

type SetStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type SetDiscountRequest struct {
	Value float64 `json:"value"`
	Kind  string  `json:"kind"`

	// Code percentage appliqué en remise ; exclusif de value/kind.
	GiftCode string `json:"gift_code"`
}

type SetTipRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}

type AddPaymentRequest struct {
	Method   string  `json:"method" binding:"required"`
	Amount   float64 `json:"amount"`
	GiftCode string  `json:"gift_code"`
}

// --------- État rendu à la caisse ---------

func sessionState(s *checkoutuc.Session) gin.H {
	return gin.H{
		"id":        s.ID,
		"client_id": s.ClientID,
		"stage":     s.Ledger.Stage(),
		"lines":     s.Ledger.Lines(),
		"payments":  s.Ledger.Payments(),
		"totals":    s.Ledger.Snapshot(),
	}
}

func (h *CheckoutHandler) session(c *gin.Context) (*checkoutuc.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "session_not_found", "Session de caisse introuvable.")
		return nil, false
	}
	return s, true
}

// --------- Handlers ---------

func (h *CheckoutHandler) Open(c *gin.Context) {
	var req OpenCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	session, err := h.open.Execute(c.Request.Context(), checkoutuc.OpenCheckoutInput{
		ClientID: req.ClientID,
		Date:     req.Date,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_open_checkout", "Erreur à l'ouverture de la caisse.")
		return
	}

	c.JSON(http.StatusCreated, sessionState(session))
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionState(session))
}

func (h *CheckoutHandler) Abandon(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	// Rien n'a été écrit : jeter la session suffit.
	h.sessions.Close(session.ID)
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) SetStage(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if err := session.Ledger.SetStage(domain.Stage(req.Stage)); err != nil {
		writeBusiness(c, err, "failed_to_set_stage", "Erreur au changement d'étape.")
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

// AddLine ajoute un extra ad hoc au panier, sans rendez-vous lié.
func (h *CheckoutHandler) AddLine(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if err := session.Ledger.AddLine(domain.Line{
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	}); err != nil {
		writeBusiness(c, err, "failed_to_add_line", "Erreur à l'ajout de la ligne.")
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

// SetDiscount pose la remise de la session : un taux ou un montant
// saisi, ou bien une carte percentage dont le taux s'applique ici (elle
// n'est jamais décrémentée).
func (h *CheckoutHandler) SetDiscount(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.GiftCode != "" {
		gift, err := h.gifts.Verify(c.Request.Context(), req.GiftCode)
		if err != nil {
			writeBusiness(c, err, "gift_verify_failed", "Erreur à la vérification de la carte.")
			return
		}
		if gift.Kind != models.GiftKindPercentage {
			httperr.UnprocessableEntity(c, "invalid_instrument",
				"Seule une carte percentage s'applique en remise.")
			return
		}

		if err := session.Ledger.SetDiscount(gift.Balance, domain.DiscountPercent); err != nil {
			writeBusiness(c, err, "failed_to_set_discount", "Erreur à la pose de la remise.")
			return
		}
		c.JSON(http.StatusOK, sessionState(session))
		return
	}

	kind := domain.DiscountKind(req.Kind)
	if kind != domain.DiscountPercent && kind != domain.DiscountFixed {
		httperr.BadRequest(c, "invalid_discount_kind", "Sorte de remise inconnue.")
		return
	}

	if err := session.Ledger.SetDiscount(req.Value, kind); err != nil {
		writeBusiness(c, err, "failed_to_set_discount", "Erreur à la pose de la remise.")
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

func (h *CheckoutHandler) ClearDiscount(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	session.Ledger.ClearDiscount()
	c.JSON(http.StatusOK, sessionState(session))
}

func (h *CheckoutHandler) SetTip(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SetTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if err := session.Ledger.SetTip(req.Amount); err != nil {
		writeBusiness(c, err, "failed_to_set_tip", "Erreur à la pose du pourboire.")
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

// AddPayment insère une entrée de paiement. Les instruments sont
// vérifiés ici, avant d'entrer au ledger : carte cadeau résolue et
// couvrante, minutes sous abonnement actif et solde suffisant.
func (h *CheckoutHandler) AddPayment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	var detail domain.Detail
	method := domain.Method(req.Method)

	switch method {
	case domain.MethodCash, domain.MethodCard, domain.MethodTerminal:
		// pas de métadonnées

	case domain.MethodGift:
		gift, err := h.gifts.Verify(c.Request.Context(), req.GiftCode)
		if err != nil {
			writeBusiness(c, err, "gift_verify_failed", "Erreur à la vérification de la carte.")
			return
		}
		if gift.Kind != models.GiftKindFixed {
			httperr.UnprocessableEntity(c, "invalid_instrument",
				"Une carte percentage s'applique en remise, pas en paiement.")
			return
		}
		if req.Amount > gift.Balance+payment.GiftExhaustedThreshold {
			writeBusiness(c, httperr.ErrBusiness(httperr.CodeInsufficientBalance),
				"payment_rejected", "Paiement refusé.")
			return
		}
		detail = domain.GiftDetail{GiftCodeID: gift.ID, Code: gift.Code}

	case domain.MethodMinutes:
		balance, err := h.minutes.Verify(c.Request.Context(), session.ClientID)
		if err != nil {
			writeBusiness(c, err, "minutes_verify_failed", "Erreur à la vérification du solde.")
			return
		}
		minutes := session.Ledger.ServicedMinutes()
		if !balance.ActiveSubscription {
			writeBusiness(c, httperr.ErrBusiness(httperr.CodeInvalidInstrument),
				"payment_rejected", "Paiement refusé.")
			return
		}
		if minutes > balance.Balance {
			writeBusiness(c, httperr.ErrBusiness(httperr.CodeInsufficientBalance),
				"payment_rejected", "Paiement refusé.")
			return
		}
		detail = domain.MinutesDetail{Minutes: minutes}

	default:
		httperr.BadRequest(c, "invalid_method", "Méthode de paiement inconnue.")
		return
	}

	entry, err := session.Ledger.AddPayment(method, req.Amount, detail)
	if err != nil {
		writeBusiness(c, err, "failed_to_add_payment", "Erreur à l'ajout du paiement.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": entry,
		"totals":  session.Ledger.Snapshot(),
	})
}

func (h *CheckoutHandler) RemovePayment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	pid, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		httperr.BadRequest(c, "invalid_payment_id", "Identifiant de paiement invalide.")
		return
	}

	if err := session.Ledger.RemovePayment(pid); err != nil {
		writeBusiness(c, err, "failed_to_remove_payment", "Erreur au retrait du paiement.")
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

func (h *CheckoutHandler) Settle(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	invoice, err := h.settle.Execute(c.Request.Context(), checkoutuc.SettleCheckoutInput{
		UserID:    userID,
		SessionID: c.Param("id"),
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_settle", "Erreur au règlement.")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}
