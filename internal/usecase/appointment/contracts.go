package appointment

import (
	"context"
	"time"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

// Publisher pousse les mutations vers les autres postes. L'envoi
// n'échoue jamais côté appelant.
type Publisher interface {
	Publish(ctx context.Context, ev stream.Event)
}

// CheckedCreator est le repository capable de refaire la vérification
// de conflit sous verrou juste avant l'insert (contrôle optimiste).
type CheckedCreator interface {
	domain.Repository

	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
		conflictsWith func([]models.Appointment) bool,
	) error
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0, date.Location(),
	)
	return start, start.Add(24 * time.Hour)
}
