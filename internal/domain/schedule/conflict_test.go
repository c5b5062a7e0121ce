package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2026-03-02 "+hhmm)
	return t
}

func slot(id uint, start string, durMin int, kind Kind, service string) Slot {
	return Slot{
		ID:          id,
		Start:       at(start),
		DurationMin: durMin,
		Kind:        kind,
		ServiceName: service,
	}
}

func TestConflictsSameServiceOverlap(t *testing.T) {
	existing := []Slot{slot(1, "10:00", 30, KindService, "Massage")}

	cand := slot(0, "10:20", 30, KindService, "Massage")
	assert.True(t, Conflicts(cand, existing))
}

func TestNoConflictDifferentServicesOverlap(t *testing.T) {
	existing := []Slot{slot(1, "10:00", 30, KindService, "Massage")}

	cand := slot(0, "10:20", 30, KindService, "Manucure")
	assert.False(t, Conflicts(cand, existing))
}

func TestBlockConflictsWithEverything(t *testing.T) {
	existing := []Slot{slot(1, "10:00", 60, KindBlock, "")}

	assert.True(t, Conflicts(slot(0, "10:30", 30, KindService, "Massage"), existing))
	assert.True(t, Conflicts(slot(0, "10:30", 30, KindService, "Manucure"), existing))

	// Et inversement : poser un block sur un soin existant.
	existing = []Slot{slot(1, "10:00", 30, KindService, "Massage")}
	assert.True(t, Conflicts(slot(0, "10:15", 30, KindBlock, ""), existing))
}

func TestServiceBufferExtendsOccupiedInterval(t *testing.T) {
	// Soin 10:00-10:30 : occupé jusqu'à 10:45 avec le tampon.
	existing := []Slot{slot(1, "10:00", 30, KindService, "Massage")}

	assert.True(t, Conflicts(slot(0, "10:40", 30, KindService, "Massage"), existing))
	assert.False(t, Conflicts(slot(0, "10:45", 30, KindService, "Massage"), existing))
}

func TestBufferedBoundaryIsHalfOpen(t *testing.T) {
	// Le candidat finit (tampon compris) exactement au début de
	// l'existant : pas de conflit.
	existing := []Slot{slot(1, "11:00", 30, KindService, "Massage")}

	cand := slot(0, "10:15", 30, KindService, "Massage") // occupé jusqu'à 11:00
	assert.False(t, Conflicts(cand, existing))

	cand = slot(0, "10:20", 30, KindService, "Massage") // occupé jusqu'à 11:05
	assert.True(t, Conflicts(cand, existing))
}

func TestBlockHasNoBuffer(t *testing.T) {
	existing := []Slot{slot(1, "10:00", 60, KindBlock, "")}

	// Un soin posé pile à la fin du block ne le touche pas.
	assert.False(t, Conflicts(slot(0, "11:00", 30, KindService, "Massage"), existing))
}

func TestConflictsIgnoresAppointmentUnderEdit(t *testing.T) {
	existing := []Slot{
		slot(7, "10:00", 30, KindService, "Massage"),
		slot(8, "14:00", 30, KindService, "Massage"),
	}

	// Le rendez-vous 7 déplacé sur lui-même ne se bloque pas.
	cand := slot(7, "10:10", 30, KindService, "Massage")
	assert.False(t, Conflicts(cand, existing))

	// Mais il bloque toujours contre les autres.
	cand = slot(7, "13:50", 30, KindService, "Massage")
	assert.True(t, Conflicts(cand, existing))
}

func TestFirstConflictReturnsOffender(t *testing.T) {
	existing := []Slot{
		slot(1, "09:00", 30, KindService, "Manucure"),
		slot(2, "10:00", 30, KindService, "Massage"),
	}

	offender, ok := FirstConflict(slot(0, "10:10", 30, KindService, "Massage"), existing)
	assert.True(t, ok)
	assert.Equal(t, uint(2), offender.ID)
}
