package schedule

import (
	"sort"
	"time"
)

// ===============================
// Placement en colonnes
// ===============================

// Réglages de rendu de l'agenda jour.
const (
	DefaultPixelsPerMinute = 1.0
	MinSlotHeightPx        = 24.0
)

// Placement est la géométrie de rendu d'un rendez-vous. La hauteur est
// bornée à un minimum visible sans toucher l'intervalle logique utilisé
// par le test de conflit.
type Placement struct {
	SlotID       uint    `json:"slot_id"`
	Column       int     `json:"column"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
	TopOffsetPx  float64 `json:"top_offset_px"`
	HeightPx     float64 `json:"height_px"`
}

// Layout répartit les rendez-vous d'une journée en colonnes sans
// chevauchement (empilement glouton), puis dimensionne chaque rendez-vous
// par grappe de chevauchement transitive : deux groupes indépendants de
// la même journée ne se contraignent pas mutuellement.
func Layout(slots []Slot, dayStart time.Time, pxPerMin float64) []Placement {
	if len(slots) == 0 {
		return nil
	}
	if pxPerMin <= 0 {
		pxPerMin = DefaultPixelsPerMinute
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].DurationMin > sorted[j].DurationMin
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	// Empilement : première colonne dont le dernier occupant finit au
	// plus tard au début du candidat, sinon nouvelle colonne.
	columnEnds := []time.Time{}
	columns := make([]int, len(sorted))
	for i, s := range sorted {
		placed := false
		for col, end := range columnEnds {
			if !end.After(s.Start) {
				columns[i] = col
				columnEnds[col] = s.End()
				placed = true
				break
			}
		}
		if !placed {
			columns[i] = len(columnEnds)
			columnEnds = append(columnEnds, s.End())
		}
	}

	// Grappes : fermeture transitive du chevauchement des intervalles
	// bruts. Triés par début, une grappe se ferme dès qu'un rendez-vous
	// démarre après la fin maximale courante.
	clusters := make([]int, len(sorted))
	clusterID := 0
	clusterEnd := sorted[0].End()
	for i, s := range sorted {
		if i > 0 && !s.Start.Before(clusterEnd) {
			clusterID++
			clusterEnd = s.End()
		} else if s.End().After(clusterEnd) {
			clusterEnd = s.End()
		}
		clusters[i] = clusterID
	}

	clusterMaxCol := map[int]int{}
	for i := range sorted {
		if columns[i] > clusterMaxCol[clusters[i]] {
			clusterMaxCol[clusters[i]] = columns[i]
		}
	}

	out := make([]Placement, len(sorted))
	for i, s := range sorted {
		total := clusterMaxCol[clusters[i]] + 1
		width := 100.0 / float64(total)

		height := float64(s.DurationMin) * pxPerMin
		if height < MinSlotHeightPx {
			height = MinSlotHeightPx
		}

		out[i] = Placement{
			SlotID:       s.ID,
			Column:       columns[i],
			LeftPercent:  float64(columns[i]) / float64(total) * 100.0,
			WidthPercent: width,
			TopOffsetPx:  s.Start.Sub(dayStart).Minutes() * pxPerMin,
			HeightPx:     height,
		}
	}

	return out
}
