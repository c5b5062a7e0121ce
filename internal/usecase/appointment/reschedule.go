package appointment

import (
	"context"
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/schedule"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

// ======================================================
// Déplacement en deux temps : preview puis commit
// ======================================================

type ProposeMoveInput struct {
	AppointmentID uint
	// Jour cible et position du pointeur en minutes depuis minuit,
	// accrochée à la grille de 5 min.
	Date                string
	MinutesFromMidnight int
}

type CommitMoveInput struct {
	UserID        uint
	AppointmentID uint
	Date          string
	Time          string
}

type RescheduleAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	publish Publisher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	publish Publisher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		audit:   audit,
		publish: publish,
	}
}

// Propose valide la position de dépôt et rend le déplacement prêt à
// confirmer. Le geste seul ne commet jamais : l'écriture attend la
// confirmation explicite.
func (uc *RescheduleAppointment) Propose(
	ctx context.Context,
	in ProposeMoveInput,
) (*schedule.StagedMove, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(studio.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	sameDay, err := uc.repo.ListActiveForDay(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	return schedule.ProposeMove(
		schedule.FromAppointment(*ap),
		day,
		in.MinutesFromMidnight,
		schedule.FromAppointments(sameDay),
	)
}

// Commit revalide le créneau confirmé puis écrit le nouveau début. La
// revalidation rattrape les rendez-vous posés entre le preview et la
// confirmation.
func (uc *RescheduleAppointment) Commit(
	ctx context.Context,
	in CommitMoveInput,
) (*models.Appointment, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(studio.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	dayStart, dayEnd := dayBounds(newStart)
	sameDay, err := uc.repo.ListActiveForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	cand := schedule.FromAppointment(*ap)
	cand.Start = newStart
	if schedule.Conflicts(cand, schedule.FromAppointments(sameDay)) {
		return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	if err := domain.Reschedule(ap, newStart); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_moved",
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
