package schedule

// ===============================
// Validation de créneau
// ===============================

// overlaps applique le test demi-ouvert sur les intervalles occupés :
// deux rendez-vous qui se touchent à la frontière tamponnée ne se
// chevauchent pas.
func overlaps(a, b Slot) bool {
	return a.Start.Before(b.OccupiedEnd()) && a.OccupiedEnd().After(b.Start)
}

// conflictsWith : un chevauchement n'est un conflit que si l'un des
// deux est un block, ou si les deux portent le même soin. Deux soins
// différents sont des ressources indépendantes (cabines distinctes).
func conflictsWith(cand, existing Slot) bool {
	if !overlaps(cand, existing) {
		return false
	}
	if cand.Kind == KindBlock || existing.Kind == KindBlock {
		return true
	}
	return cand.ServiceName == existing.ServiceName
}

// Conflicts indique si le candidat peut être posé parmi les rendez-vous
// du jour. Le rendez-vous en cours d'édition (même ID) est ignoré, tout
// comme le sont les annulés côté repository. En cas de conflit,
// l'appelant doit afficher un avertissement et abandonner l'écriture —
// jamais de résolution silencieuse.
func Conflicts(cand Slot, existing []Slot) bool {
	_, ok := FirstConflict(cand, existing)
	return ok
}

// FirstConflict rend le premier rendez-vous en conflit, pour le message
// affiché à l'utilisateur.
func FirstConflict(cand Slot, existing []Slot) (Slot, bool) {
	for _, ex := range existing {
		if cand.ID != 0 && ex.ID == cand.ID {
			continue
		}
		if conflictsWith(cand, ex) {
			return ex, true
		}
	}
	return Slot{}, false
}
