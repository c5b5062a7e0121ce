package appointment

import (
	"context"
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type Repository interface {
	// -------- Studio --------
	GetStudio(ctx context.Context) (*models.Studio, error)

	// -------- Service --------
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// ListActiveForDay rend les rendez-vous non annulés du jour, la
	// base du test de conflit et de la recherche de créneaux.
	ListActiveForDay(
		ctx context.Context,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Listing --------
	ListForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
