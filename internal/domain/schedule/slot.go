package schedule

import (
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// ===============================
// Intervalle occupé
// ===============================

type Kind string

const (
	KindService Kind = "service"
	KindBlock   Kind = "block"
)

// Tampon ajouté après chaque soin pour éviter les enchaînements dos à
// dos. Les blocks ferment le calendrier sans tampon.
const ServiceBufferMin = 15

// Slot est la projection calendrier d'un rendez-vous : le strict
// nécessaire pour le test de conflit et le placement en colonnes.
type Slot struct {
	ID          uint
	Start       time.Time
	DurationMin int
	Kind        Kind
	ServiceName string
}

func Buffer(k Kind) time.Duration {
	if k == KindBlock {
		return 0
	}
	return ServiceBufferMin * time.Minute
}

// End est la fin du soin lui-même.
func (s Slot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMin) * time.Minute)
}

// OccupiedEnd est la fin de l'intervalle occupé [start, end+tampon).
func (s Slot) OccupiedEnd() time.Time {
	return s.End().Add(Buffer(s.Kind))
}

// FromAppointment projette un rendez-vous persisté. Les annulés sont
// filtrés en amont par le repository.
func FromAppointment(ap models.Appointment) Slot {
	return Slot{
		ID:          ap.ID,
		Start:       ap.StartTime,
		DurationMin: ap.DurationMin,
		Kind:        Kind(ap.Kind),
		ServiceName: ap.ServiceName,
	}
}

func FromAppointments(aps []models.Appointment) []Slot {
	out := make([]Slot, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
