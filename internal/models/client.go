package models

import "time"

// Client porte le solde de minutes d'abonnement utilisé en caisse.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	MinutesBalance     int    `gorm:"default:0" json:"minutes_balance"`
	SubscriptionPlan   string `gorm:"size:50" json:"subscription_plan"`
	SubscriptionActive bool   `gorm:"default:false" json:"subscription_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
