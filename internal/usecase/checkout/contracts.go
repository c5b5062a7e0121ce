package checkout

import (
	"context"
	"time"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/notify"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

// Contrats de stockage du règlement. Chaque écriture est indépendante
// et rejouable : aucune transaction ne les couvre ensemble.

type AppointmentStore interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	ListActiveForDay(
		ctx context.Context,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)
}

type InvoiceStore interface {
	Insert(ctx context.Context, invoice *models.Invoice) error
}

type Publisher interface {
	Publish(ctx context.Context, ev stream.Event)
}

// Effets de bord du règlement : journal d'audit et notification de
// reçu, tous deux déposés sans attendre.

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Dispatch(msg notify.Message)
}
