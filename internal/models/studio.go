package models

import "time"

// Studio est l'unique ligne de configuration du centre (calendrier mono-ressource).
type Studio struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Phone             string    `gorm:"size:20" json:"phone"`
	Address           string    `gorm:"size:255" json:"address"`
	Timezone          string    `gorm:"size:50" json:"timezone"`
	Currency          string    `gorm:"size:3;default:'EUR'" json:"currency"`
	OpenTime          string    `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime         string    `gorm:"size:5;default:'19:00'" json:"close_time"`
	MinAdvanceMinutes int       `gorm:"default:0" json:"min_advance_minutes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
