package appointment

import (
	"context"
	"time"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/dto"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

type ListMonth struct {
	repo domain.Repository
}

func NewListMonth(repo domain.Repository) *ListMonth {
	return &ListMonth{repo: repo}
}

func (uc *ListMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	studio, err := uc.repo.GetStudio(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime(),
			Status:      ap.Status,
			Kind:        ap.Kind,
			ServiceName: ap.ServiceName,
			ClientName:  ap.Client.Name,
		})
	}

	return out, nil
}
