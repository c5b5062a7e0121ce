package stream

import (
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// ======================================================
// Réconciliation temps réel
// ======================================================

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event est une mutation distante du flux append-only des rendez-vous.
type Event struct {
	Type        EventType          `json:"type"`
	ID          uint               `json:"id"`
	Appointment models.Appointment `json:"appointment,omitempty"`
}

// Apply replie un événement dans l'état local, idempotent et
// indépendant du transport : insert ignoré si l'id existe déjà, update
// remplace par id (reprise en insertion si l'insert a été manqué),
// delete filtre par id. Rejouer un événement ne change rien.
func Apply(state []models.Appointment, ev Event) []models.Appointment {
	switch ev.Type {
	case EventInsert:
		if indexOf(state, ev.Appointment.ID) >= 0 {
			return state
		}
		out := make([]models.Appointment, len(state), len(state)+1)
		copy(out, state)
		return append(out, ev.Appointment)

	case EventUpdate:
		i := indexOf(state, ev.Appointment.ID)
		if i < 0 {
			out := make([]models.Appointment, len(state), len(state)+1)
			copy(out, state)
			return append(out, ev.Appointment)
		}
		out := make([]models.Appointment, len(state))
		copy(out, state)
		out[i] = ev.Appointment
		return out

	case EventDelete:
		i := indexOf(state, ev.ID)
		if i < 0 {
			return state
		}
		out := make([]models.Appointment, 0, len(state)-1)
		out = append(out, state[:i]...)
		return append(out, state[i+1:]...)

	default:
		return state
	}
}

func indexOf(state []models.Appointment, id uint) int {
	for i, ap := range state {
		if ap.ID == id {
			return i
		}
	}
	return -1
}
