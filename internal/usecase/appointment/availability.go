package appointment

import (
	"context"
	"time"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/schedule"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

// Pas d'exploration des créneaux proposés à la réservation.
const slotStepMin = 15

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute balaie les heures d'ouverture au pas de 15 min et garde les
// départs que le validateur accepte pour ce soin : le tampon et la
// règle un-soin-à-la-fois s'appliquent d'eux-mêmes.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	loc := timezone.Location(studio.Timezone)

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayOpen := parseHM(studio.OpenTime)
	dayClose := parseHM(studio.CloseTime)
	if !dayClose.After(dayOpen) {
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := dayBounds(dayOpen)
	appointments, err := uc.repo.ListActiveForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	existing := schedule.FromAppointments(appointments)

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	var slots []domain.TimeSlot

	for cur := dayOpen; !cur.Add(slotDuration).After(dayClose); cur = cur.Add(slotStepMin * time.Minute) {

		cand := schedule.Slot{
			Start:       cur,
			DurationMin: service.DurationMin,
			Kind:        schedule.KindService,
			ServiceName: service.Name,
		}

		if !schedule.Conflicts(cand, existing) {
			slots = append(slots, domain.TimeSlot{
				Start: cur.Format("15:04"),
				End:   cur.Add(slotDuration).Format("15:04"),
			})
		}
	}

	return slots, nil
}
