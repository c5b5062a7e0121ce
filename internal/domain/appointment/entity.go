package appointment

import (
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// ===============================
// Actions de domaine
// ===============================

// Cancel annule logiquement : le rendez-vous sort des contrôles de
// conflit et du regroupement en caisse, la ligne reste.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete marque le rendez-vous réglé, avec la méthode de paiement
// employée (ou mixed pour un règlement multi-instruments).
func Complete(ap *models.Appointment, now time.Time, method string) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.PaymentMethod = method
	return nil
}

// Reschedule déplace le début ; la durée et le soin ne changent pas.
func Reschedule(ap *models.Appointment, newStart time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartTime = newStart
	return nil
}
