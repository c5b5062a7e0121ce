package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type GiftGormRepository struct {
	db *gorm.DB
}

func NewGiftGormRepository(db *gorm.DB) *GiftGormRepository {
	return &GiftGormRepository{db: db}
}

func (r *GiftGormRepository) Lookup(
	ctx context.Context,
	code string,
) (*models.GiftCode, error) {

	var gift models.GiftCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&gift).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *GiftGormRepository) Update(
	ctx context.Context,
	gift *models.GiftCode,
) error {
	return r.db.WithContext(ctx).Save(gift).Error
}

func (r *GiftGormRepository) Create(
	ctx context.Context,
	gift *models.GiftCode,
) error {
	gift.Code = strings.ToUpper(strings.TrimSpace(gift.Code))
	return r.db.WithContext(ctx).Create(gift).Error
}

func (r *GiftGormRepository) List(ctx context.Context) ([]models.GiftCode, error) {
	var gifts []models.GiftCode
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&gifts).Error; err != nil {
		return nil, err
	}
	return gifts, nil
}

// Compile-time check
var _ payment.GiftStore = (*GiftGormRepository)(nil)
