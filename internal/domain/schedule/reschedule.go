package schedule

import (
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
)

// ===============================
// Déplacement par glisser-déposer
// ===============================

// Grille d'accroche du dépôt : le pointeur est arrondi au pas de 5 min.
const SnapGridMin = 5

// StagedMove est un déplacement validé mais non commité. Le geste de
// glisser ne commite jamais : la confirmation est un second appel
// distinct qui revalide avant d'écrire.
type StagedMove struct {
	AppointmentID uint      `json:"appointment_id"`
	NewStart      time.Time `json:"new_start"`
	NewDate       string    `json:"new_date"`
	NewTime       string    `json:"new_time"`
}

// SnapToGrid arrondit un nombre de minutes depuis minuit au pas de
// grille le plus proche.
func SnapToGrid(minutesFromMidnight int) int {
	half := SnapGridMin / 2
	snapped := ((minutesFromMidnight + half) / SnapGridMin) * SnapGridMin
	if snapped < 0 {
		snapped = 0
	}
	return snapped
}

// ProposeMove transforme une position de dépôt (jour cible + minutes
// depuis minuit) en candidat, le valide contre la journée en excluant
// le rendez-vous déplacé, et rend le déplacement prêt à confirmer. En
// conflit : avertissement bloquant, le déplacement est jeté.
func ProposeMove(
	moved Slot,
	targetDay time.Time,
	minutesFromMidnight int,
	existing []Slot,
) (*StagedMove, error) {

	snapped := SnapToGrid(minutesFromMidnight)
	newStart := targetDay.Add(time.Duration(snapped) * time.Minute)

	cand := moved
	cand.Start = newStart

	if Conflicts(cand, existing) {
		return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	return &StagedMove{
		AppointmentID: moved.ID,
		NewStart:      newStart,
		NewDate:       newStart.Format("2006-01-02"),
		NewTime:       newStart.Format("15:04"),
	}, nil
}
