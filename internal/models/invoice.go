package models

import "time"

// Invoice est l'enregistrement persisté au règlement d'une session de
// caisse. Description suit le format pipe attendu par la réimpression :
// "<item> (<durée> min)" | ... | "Paiements: [<label>: <montant>, ...]"
// | "Discount (...): -<x>" | "Tip: <x>" — ordre et séparateurs figés.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number string `gorm:"size:40;uniqueIndex;not null" json:"number"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tip      float64 `json:"tip"`
	Total    float64 `json:"total"`

	Description string `gorm:"type:text" json:"description"`

	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID" json:"payments"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoicePayment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `json:"invoice_id"`

	Method string  `gorm:"size:20;not null" json:"method"`
	Amount float64 `json:"amount"`

	GiftCodeID     *uint `json:"gift_code_id"`
	MinutesDebited int   `gorm:"default:0" json:"minutes_debited"`
}
