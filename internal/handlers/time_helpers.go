package handlers

import (
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/timezone"
)

// --------------------------------------------------
// Temps centralisé sur le fuseau du centre
// --------------------------------------------------

func locationOf(studio *models.Studio) *time.Location {
	if studio != nil {
		return timezone.Location(studio.Timezone)
	}
	return timezone.Location(timezone.DefaultTimezone)
}

func parseDateInStudio(studio *models.Studio, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationOf(studio),
	)
}

func isValidHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
