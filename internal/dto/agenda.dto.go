package dto

import (
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/schedule"
)

// AgendaItemDTO est un rendez-vous prêt à rendre : données du jour plus
// la géométrie calculée par le moteur de placement.
type AgendaItemDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	ServiceName string    `json:"service_name"`
	ClientName  string    `json:"client_name"`

	Layout schedule.Placement `json:"layout"`
}

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Kind        string    `json:"kind"`
	ServiceName string    `json:"service_name"`
	ClientName  string    `json:"client_name"`
}
