package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayStart() time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2026-03-02 00:00")
	return t
}

func placementByID(t *testing.T, ps []Placement, id uint) Placement {
	t.Helper()
	for _, p := range ps {
		if p.SlotID == id {
			return p
		}
	}
	t.Fatalf("placement for slot %d not found", id)
	return Placement{}
}

func TestLayoutEmpty(t *testing.T) {
	assert.Nil(t, Layout(nil, dayStart(), 1))
}

func TestLayoutSingleSlotFullWidth(t *testing.T) {
	ps := Layout([]Slot{slot(1, "10:00", 60, KindService, "Massage")}, dayStart(), 1)
	require.Len(t, ps, 1)

	assert.Equal(t, 0, ps[0].Column)
	assert.Equal(t, 0.0, ps[0].LeftPercent)
	assert.Equal(t, 100.0, ps[0].WidthPercent)
	assert.Equal(t, 600.0, ps[0].TopOffsetPx)
	assert.Equal(t, 60.0, ps[0].HeightPx)
}

func TestLayoutOverlappingPairSplitsWidth(t *testing.T) {
	ps := Layout([]Slot{
		slot(1, "10:00", 60, KindService, "Massage"),
		slot(2, "10:30", 60, KindService, "Manucure"),
	}, dayStart(), 1)
	require.Len(t, ps, 2)

	a := placementByID(t, ps, 1)
	b := placementByID(t, ps, 2)

	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 1, b.Column)
	assert.Equal(t, 50.0, a.WidthPercent)
	assert.Equal(t, 50.0, b.WidthPercent)
	assert.Equal(t, 0.0, a.LeftPercent)
	assert.Equal(t, 50.0, b.LeftPercent)
}

func TestLayoutColumnReuseAfterGap(t *testing.T) {
	ps := Layout([]Slot{
		slot(1, "09:00", 30, KindService, "Massage"),
		slot(2, "09:30", 30, KindService, "Massage"),
	}, dayStart(), 1)

	// Le second commence pile à la fin du premier : même colonne.
	assert.Equal(t, 0, placementByID(t, ps, 1).Column)
	assert.Equal(t, 0, placementByID(t, ps, 2).Column)
}

func TestLayoutTieBrokenByLongerDuration(t *testing.T) {
	ps := Layout([]Slot{
		slot(1, "10:00", 30, KindService, "Manucure"),
		slot(2, "10:00", 90, KindService, "Massage"),
	}, dayStart(), 1)

	// À début égal, le plus long est placé d'abord (colonne 0).
	assert.Equal(t, 0, placementByID(t, ps, 2).Column)
	assert.Equal(t, 1, placementByID(t, ps, 1).Column)
}

func TestLayoutIndependentClustersSizedSeparately(t *testing.T) {
	ps := Layout([]Slot{
		// Grappe du matin : trois rendez-vous imbriqués.
		slot(1, "09:00", 60, KindService, "Massage"),
		slot(2, "09:15", 60, KindService, "Manucure"),
		slot(3, "09:30", 60, KindService, "Soin visage"),
		// Après-midi isolé : pleine largeur malgré la grappe du matin.
		slot(4, "15:00", 60, KindService, "Massage"),
	}, dayStart(), 1)

	assert.InDelta(t, 100.0/3.0, placementByID(t, ps, 1).WidthPercent, 1e-9)
	assert.Equal(t, 100.0, placementByID(t, ps, 4).WidthPercent)
	assert.Equal(t, 0.0, placementByID(t, ps, 4).LeftPercent)
}

func TestLayoutChainedOverlapFormsOneCluster(t *testing.T) {
	// A chevauche B, B chevauche C, mais A ne touche pas C : la
	// fermeture transitive les met dans la même grappe.
	ps := Layout([]Slot{
		slot(1, "09:00", 45, KindService, "Massage"),
		slot(2, "09:30", 45, KindService, "Manucure"),
		slot(3, "10:00", 45, KindService, "Soin visage"),
	}, dayStart(), 1)

	// C réutilise la colonne 0 (A finit 09:45 ≤ 10:00) : deux colonnes
	// au total, moitié de largeur pour tous.
	for _, id := range []uint{1, 2, 3} {
		assert.Equal(t, 50.0, placementByID(t, ps, id).WidthPercent)
	}
	assert.Equal(t, 0, placementByID(t, ps, 3).Column)
}

func TestLayoutNoOverlapWithinColumn(t *testing.T) {
	slots := []Slot{
		slot(1, "09:00", 90, KindService, "Massage"),
		slot(2, "09:10", 20, KindService, "Manucure"),
		slot(3, "09:40", 30, KindService, "Soin visage"),
		slot(4, "10:30", 60, KindService, "Massage"),
		slot(5, "10:40", 15, KindService, "Manucure"),
		slot(6, "12:00", 30, KindService, "Massage"),
	}
	ps := Layout(slots, dayStart(), 1)

	byID := map[uint]Slot{}
	for _, s := range slots {
		byID[s.ID] = s
	}

	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Column != ps[j].Column {
				continue
			}
			a, b := byID[ps[i].SlotID], byID[ps[j].SlotID]
			overlapping := a.Start.Before(b.End()) && a.End().After(b.Start)
			assert.False(t, overlapping,
				"slots %d and %d share column %d but overlap", a.ID, b.ID, ps[i].Column)
		}
	}
}

func TestLayoutMinHeightClamp(t *testing.T) {
	ps := Layout([]Slot{slot(1, "10:00", 10, KindService, "Express")}, dayStart(), 1)

	// 10 px logiques, bornés au minimum visible.
	assert.Equal(t, MinSlotHeightPx, ps[0].HeightPx)
	assert.Equal(t, 600.0, ps[0].TopOffsetPx)
}

func TestLayoutPixelsPerMinuteScale(t *testing.T) {
	ps := Layout([]Slot{slot(1, "08:00", 60, KindService, "Massage")}, dayStart(), 2)

	assert.Equal(t, 960.0, ps[0].TopOffsetPx)
	assert.Equal(t, 120.0, ps[0].HeightPx)
}
