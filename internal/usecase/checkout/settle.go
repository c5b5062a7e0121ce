package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	apdomain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/checkout"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/notify"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

// ======================================================
// Règlement
// ======================================================

type SettleCheckoutInput struct {
	UserID    uint
	SessionID string
}

// SettleCheckout fige le ledger puis déroule les écritures du
// règlement. La facture est l'écriture principale : son échec remonte à
// l'appelant. Les suites (rendez-vous terminés, tirages carte cadeau et
// minutes, reçu) sont indépendantes et rejouables ; un échec est tracé
// et n'annule jamais un règlement déjà figé.
type SettleCheckout struct {
	sessions     *Registry
	appointments AppointmentStore
	invoices     InvoiceStore

	gifts   *payment.GiftHandler
	minutes *payment.MinutesHandler

	audit   Auditor
	notify  Notifier
	publish Publisher
}

func NewSettleCheckout(
	sessions *Registry,
	appointments AppointmentStore,
	invoices InvoiceStore,
	gifts *payment.GiftHandler,
	minutes *payment.MinutesHandler,
	auditor Auditor,
	notifier Notifier,
	publish Publisher,
) *SettleCheckout {
	return &SettleCheckout{
		sessions:     sessions,
		appointments: appointments,
		invoices:     invoices,
		gifts:        gifts,
		minutes:      minutes,
		audit:        auditor,
		notify:       notifier,
		publish:      publish,
	}
}

func (uc *SettleCheckout) Execute(
	ctx context.Context,
	in SettleCheckoutInput,
) (*models.Invoice, error) {

	session, err := uc.sessions.Get(in.SessionID)
	if err != nil {
		return nil, err
	}
	l := session.Ledger

	// Fige la session : refusé hors tolérance, refusé une seconde fois.
	if err := l.Settle(); err != nil {
		return nil, err
	}
	snap := l.Snapshot()

	invoice := &models.Invoice{
		Number:      invoiceNumber(),
		ClientID:    session.ClientID,
		Subtotal:    snap.Subtotal,
		Discount:    snap.Discount,
		Tip:         snap.Tip,
		Total:       snap.Total,
		Description: l.Description(),
	}
	for _, p := range l.Payments() {
		row := models.InvoicePayment{
			Method: string(p.Method),
			Amount: p.Amount,
		}
		switch d := p.Detail.(type) {
		case domain.GiftDetail:
			id := d.GiftCodeID
			row.GiftCodeID = &id
		case domain.MinutesDetail:
			row.MinutesDebited = d.Minutes
		}
		invoice.Payments = append(invoice.Payments, row)
	}

	if err := uc.invoices.Insert(ctx, invoice); err != nil {
		// Le ledger est déjà figé : la facture se rejoue depuis le
		// snapshot, les instruments n'ont encore rien tiré.
		return nil, httperr.ErrBusiness(httperr.CodePersistence)
	}

	now := timezone.Now()
	method := l.SettledMethod()

	for _, id := range l.AppointmentIDs() {
		ap, err := uc.appointments.GetAppointment(ctx, id)
		if err != nil {
			log.Printf("settle %s: appointment %d introuvable: %v", invoice.Number, id, err)
			continue
		}
		if err := apdomain.Complete(ap, now, string(method)); err != nil {
			log.Printf("settle %s: appointment %d non complétable: %v", invoice.Number, id, err)
			continue
		}
		ap.InvoiceID = &invoice.ID

		if err := uc.appointments.UpdateAppointment(ctx, ap); err != nil {
			log.Printf("settle %s: appointment %d non sauvé: %v", invoice.Number, id, err)
			continue
		}

		uc.publish.Publish(ctx, stream.Event{
			Type:        stream.EventUpdate,
			ID:          ap.ID,
			Appointment: *ap,
		})
	}

	uc.drawInstruments(ctx, session, invoice)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "checkout_settled",
		Entity:   "invoice",
		EntityID: &invoice.ID,
		Metadata: map[string]any{
			"number": invoice.Number,
			"total":  invoice.Total,
			"method": string(method),
		},
	})

	uc.notify.Dispatch(notify.Message{
		Type:      "invoice_receipt",
		Recipient: fmt.Sprintf("client:%d", session.ClientID),
		Payload: map[string]any{
			"number": invoice.Number,
			"total":  invoice.Total,
		},
	})

	uc.sessions.Close(session.ID)
	return invoice, nil
}

// drawInstruments débite cartes cadeaux et minutes après coup. Chaque
// tirage est tenté même si le précédent a échoué.
func (uc *SettleCheckout) drawInstruments(
	ctx context.Context,
	session *Session,
	invoice *models.Invoice,
) {
	for _, p := range session.Ledger.Payments() {
		switch d := p.Detail.(type) {
		case domain.GiftDetail:
			gift, err := uc.gifts.Verify(ctx, d.Code)
			if err != nil {
				log.Printf("settle %s: carte %s invérifiable: %v", invoice.Number, d.Code, err)
				continue
			}
			if _, err := uc.gifts.Draw(ctx, gift, p.Amount); err != nil {
				log.Printf("settle %s: carte %s non débitée: %v", invoice.Number, d.Code, err)
			}

		case domain.MinutesDetail:
			if _, err := uc.minutes.Draw(ctx, session.ClientID, d.Minutes); err != nil {
				log.Printf("settle %s: minutes du client %d non débitées: %v",
					invoice.Number, session.ClientID, err)
			}
		}
	}
}

// invoiceNumber produit un numéro court et unique, lisible sur ticket.
func invoiceNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "FAC-" + raw[:10]
}
