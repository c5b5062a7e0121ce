package models

import "time"

const (
	AppointmentKindService = "service"
	AppointmentKindBlock   = "block"
)

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_min"`

	// service ou block; un block ferme le calendrier à toute réservation.
	Kind string `gorm:"size:10;default:'service'" json:"kind"`

	// Nom et prix du soin figés à la réservation.
	ServiceName  string  `gorm:"size:100" json:"service_name"`
	ServicePrice float64 `json:"service_price"`

	Status        string `gorm:"size:20;default:'confirmed'" json:"status"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	InvoiceID     *uint  `json:"invoice_id"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime est la fin du soin, sans le tampon de 15 minutes.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMin) * time.Minute)
}
