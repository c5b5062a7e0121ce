package models

import "time"

const (
	GiftKindFixed      = "fixed"
	GiftKindPercentage = "percentage"
)

const (
	GiftStatusActive   = "active"
	GiftStatusUsed     = "used"
	GiftStatusExpired  = "expired"
	GiftStatusDisabled = "disabled"
)

// GiftCode est une carte cadeau : solde en euros (fixed) ou taux de
// remise (percentage, jamais décrémenté).
type GiftCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code string `gorm:"size:40;uniqueIndex;not null" json:"code"`

	Kind           string  `gorm:"size:12;default:'fixed'" json:"kind"`
	InitialBalance float64 `json:"initial_balance"`
	Balance        float64 `json:"balance"`

	Status     string     `gorm:"size:12;default:'active'" json:"status"`
	UsageCount int        `gorm:"default:0" json:"usage_count"`
	ExpiresAt  *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
