package appointment

import (
	"context"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	publish Publisher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	publish Publisher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   audit,
		publish: publish,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	now := timezone.NowIn(studio.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.publish.Publish(ctx, stream.Event{
		Type:        stream.EventUpdate,
		ID:          ap.ID,
		Appointment: *ap,
	})

	return ap, nil
}
