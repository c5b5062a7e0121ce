package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) UpdateMinutes(
	ctx context.Context,
	id uint,
	balance int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("minutes_balance", balance).Error
}

// Compile-time check
var _ payment.ClientStore = (*ClientGormRepository)(nil)
