package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) Insert(
	ctx context.Context,
	invoice *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceGormRepository) GetByNumber(
	ctx context.Context,
	number string,
) (*models.Invoice, error) {

	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Preload("Client").
		Where("number = ?", number).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceGormRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
