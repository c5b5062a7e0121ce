package appointment

import (
	"context"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

// DeleteAppointment efface un block du calendrier. Les soins ne
// s'effacent jamais : ils s'annulent et gardent leur trace.
type DeleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	publish Publisher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	publish Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:    repo,
		audit:   audit,
		publish: publish,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	if ap.Kind != models.AppointmentKindBlock {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "block_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.publish.Publish(ctx, stream.Event{
		Type: stream.EventDelete,
		ID:   ap.ID,
	})

	return nil
}
