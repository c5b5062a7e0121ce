package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httpresp"
	"github.com/ApollonSMK/MEXperience-sub000/internal/infra/repository"
)

type InvoiceHandler struct {
	repo *repository.InvoiceGormRepository
}

func NewInvoiceHandler(repo *repository.InvoiceGormRepository) *InvoiceHandler {
	return &InvoiceHandler{repo: repo}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.repo.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Erreur à la lecture des factures.")
		return
	}

	httpresp.List(c, invoices)
}

// GetByNumber sert la réimpression : la Description porte le détail
// complet de la note au format figé.
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))

	invoice, err := h.repo.GetByNumber(c.Request.Context(), number)
	if err != nil {
		httperr.NotFound(c, "invoice_not_found", "Facture introuvable.")
		return
	}

	c.JSON(http.StatusOK, invoice)
}
