package payment

import (
	"context"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

// Contrats de stockage consommés par les gestionnaires d'instruments.
// Implémentés côté infra (gorm) et mockés dans les tests.

type GiftStore interface {
	Lookup(ctx context.Context, code string) (*models.GiftCode, error)
	Update(ctx context.Context, gift *models.GiftCode) error
}

type ClientStore interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	UpdateMinutes(ctx context.Context, id uint, balance int) error
}
