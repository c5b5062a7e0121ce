package checkout

import (
	"context"
	"time"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/checkout"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

// ======================================================
// Ouverture de caisse
// ======================================================

type OpenCheckoutInput struct {
	ClientID uint
	Date     string // "2006-01-02", jour regroupé en panier
}

// OpenCheckout ouvre une session et y verse les soins du jour du client
// qui n'ont pas encore été facturés. Les blocks et les rendez-vous
// annulés ne passent jamais en caisse.
type OpenCheckout struct {
	appointments AppointmentStore
	sessions     *Registry
}

func NewOpenCheckout(appointments AppointmentStore, sessions *Registry) *OpenCheckout {
	return &OpenCheckout{
		appointments: appointments,
		sessions:     sessions,
	}
}

func (uc *OpenCheckout) Execute(
	ctx context.Context,
	in OpenCheckoutInput,
) (*Session, error) {

	if in.ClientID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	day, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	sameDay, err := uc.appointments.ListActiveForDay(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	session := uc.sessions.Open(in.ClientID)
	for _, ap := range sameDay {
		if ap.ClientID != in.ClientID || ap.Kind != models.AppointmentKindService {
			continue
		}
		if ap.InvoiceID != nil {
			continue
		}

		if err := session.Ledger.AddLine(domain.Line{
			AppointmentID: ap.ID,
			Name:          ap.ServiceName,
			DurationMin:   ap.DurationMin,
			Price:         ap.ServicePrice,
		}); err != nil {
			uc.sessions.Close(session.ID)
			return nil, err
		}
	}

	return session, nil
}
