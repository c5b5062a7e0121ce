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
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	// ServiceID à zéro avec Kind=block pose une fermeture du calendrier.
	ServiceID uint
	Kind      string

	Date        string
	Time        string
	DurationMin int // durée explicite d'un block ; soin = durée du service
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    CheckedCreator
	audit   *audit.Dispatcher
	publish Publisher
}

func NewCreateAppointment(
	repo CheckedCreator,
	audit *audit.Dispatcher,
	publish Publisher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		publish: publish,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	if in.Kind == "" {
		in.Kind = models.AppointmentKindService
	}
	if in.Kind != models.AppointmentKindService && in.Kind != models.AppointmentKindBlock {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(studio.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if studio.MinAdvanceMinutes > 0 {
		now := timezone.NowIn(studio.Timezone)
		if start.Before(now.Add(time.Duration(studio.MinAdvanceMinutes) * time.Minute)) {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	}

	ap := &models.Appointment{
		StartTime: start,
		Kind:      in.Kind,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if in.Kind == models.AppointmentKindBlock {
		if in.DurationMin <= 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		ap.DurationMin = in.DurationMin
	} else {
		if in.ClientName == "" || in.ClientPhone == "" {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}

		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}

		client, err := uc.repo.GetOrCreateClient(
			ctx,
			in.ClientName,
			in.ClientPhone,
			in.ClientEmail,
		)
		if err != nil {
			return nil, err
		}

		ap.ClientID = client.ID
		ap.DurationMin = service.DurationMin
		ap.ServiceName = service.Name
		ap.ServicePrice = service.Price
	}

	// Relecture du jour sous verrou + test de conflit juste avant
	// l'insert. En conflit : avertissement à l'appelant, pas de retry.
	cand := schedule.FromAppointment(*ap)
	err = uc.repo.CreateAppointmentChecked(ctx, ap, func(sameDay []models.Appointment) bool {
		return schedule.Conflicts(cand, schedule.FromAppointments(sameDay))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.publish.Publish(ctx, stream.Event{
		Type:        stream.EventInsert,
		ID:          ap.ID,
		Appointment: *ap,
	})

	return ap, nil
}
