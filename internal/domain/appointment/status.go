package appointment

import "github.com/ApollonSMK/MEXperience-sub000/internal/httperr"

// ===============================
// Statut des rendez-vous
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel : seul un rendez-vous confirmé s'annule.
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete : la complétion arrive au règlement en caisse.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanReschedule : un rendez-vous terminé ou annulé ne se déplace plus.
func CanReschedule(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
