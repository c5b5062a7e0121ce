package appointment

import (
	"context"
	"time"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/schedule"
	"github.com/ApollonSMK/MEXperience-sub000/internal/dto"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

type ListDayAgenda struct {
	repo domain.Repository
}

func NewListDayAgenda(repo domain.Repository) *ListDayAgenda {
	return &ListDayAgenda{repo: repo}
}

// Execute rend l'agenda du jour avec la géométrie de rendu : colonnes
// sans chevauchement, largeur par grappe, offsets en pixels.
func (uc *ListDayAgenda) Execute(
	ctx context.Context,
	date time.Time,
	pxPerMin float64,
) ([]dto.AgendaItemDTO, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := timezone.DayStart(date, studio.Timezone)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListForPeriod(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// Les annulés restent listés mais ne pèsent pas dans le placement.
	var visible []schedule.Slot
	for _, ap := range appointments {
		if ap.Status != string(domain.StatusCancelled) {
			visible = append(visible, schedule.FromAppointment(ap))
		}
	}

	placements := map[uint]schedule.Placement{}
	for _, p := range schedule.Layout(visible, dayStart, pxPerMin) {
		placements[p.SlotID] = p
	}

	out := make([]dto.AgendaItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AgendaItemDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime(),
			DurationMin: ap.DurationMin,
			Kind:        ap.Kind,
			Status:      ap.Status,
			ServiceName: ap.ServiceName,
			ClientName:  ap.Client.Name,
			Layout:      placements[ap.ID],
		})
	}

	return out, nil
}
