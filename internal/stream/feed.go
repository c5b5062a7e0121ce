package stream

import (
	"sync"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// Feed est le miroir local du flux : l'état courant replié par le
// réducteur, lisible par les handlers pendant que l'abonné redis le
// nourrit.
type Feed struct {
	mu    sync.RWMutex
	state []models.Appointment
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Apply(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Apply(f.state, ev)
}

func (f *Feed) Snapshot() []models.Appointment {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Appointment, len(f.state))
	copy(out, f.state)
	return out
}
