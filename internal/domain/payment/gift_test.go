package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type MockGiftStore struct{ mock.Mock }

func (m *MockGiftStore) Lookup(ctx context.Context, code string) (*models.GiftCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GiftCode), args.Error(1)
}

func (m *MockGiftStore) Update(ctx context.Context, gift *models.GiftCode) error {
	return m.Called(ctx, gift).Error(0)
}

func activeGift(balance float64) *models.GiftCode {
	return &models.GiftCode{
		ID:             4,
		Code:           "GC-123",
		Kind:           models.GiftKindFixed,
		InitialBalance: balance,
		Balance:        balance,
		Status:         models.GiftStatusActive,
	}
}

func TestGiftVerifyActive(t *testing.T) {
	store := new(MockGiftStore)
	store.On("Lookup", mock.Anything, "GC-123").Return(activeGift(30), nil)

	gift, err := NewGiftHandler(store).Verify(context.Background(), "GC-123")
	require.NoError(t, err)
	assert.Equal(t, 30.0, gift.Balance)
	store.AssertExpectations(t)
}

func TestGiftVerifyUnknownCode(t *testing.T) {
	store := new(MockGiftStore)
	store.On("Lookup", mock.Anything, "NOPE").Return(nil, errors.New("not found"))

	_, err := NewGiftHandler(store).Verify(context.Background(), "NOPE")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInstrument))
}

func TestGiftVerifyRejectsBadStates(t *testing.T) {
	expired := activeGift(30)
	past := time.Now().Add(-time.Hour)
	expired.ExpiresAt = &past

	disabled := activeGift(30)
	disabled.Status = models.GiftStatusDisabled

	exhausted := activeGift(0.01)

	for name, gift := range map[string]*models.GiftCode{
		"expired":   expired,
		"disabled":  disabled,
		"exhausted": exhausted,
	} {
		store := new(MockGiftStore)
		store.On("Lookup", mock.Anything, gift.Code).Return(gift, nil)

		_, err := NewGiftHandler(store).Verify(context.Background(), gift.Code)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInstrument), name)
	}
}

func TestGiftVerifyPercentageIgnoresBalance(t *testing.T) {
	// Une carte percentage porte un taux : pas de notion d'épuisement.
	gift := activeGift(10)
	gift.Kind = models.GiftKindPercentage
	gift.Balance = 0

	store := new(MockGiftStore)
	store.On("Lookup", mock.Anything, "GC-123").Return(gift, nil)

	_, err := NewGiftHandler(store).Verify(context.Background(), "GC-123")
	assert.NoError(t, err)
}

func TestGiftDrawPartial(t *testing.T) {
	gift := activeGift(50)
	store := new(MockGiftStore)
	store.On("Update", mock.Anything, gift).Return(nil)

	newBalance, err := NewGiftHandler(store).Draw(context.Background(), gift, 30)
	require.NoError(t, err)
	assert.Equal(t, 20.0, newBalance)
	assert.Equal(t, models.GiftStatusActive, gift.Status)
	assert.Equal(t, 1, gift.UsageCount)
}

func TestGiftDrawExhaustsAndDeactivates(t *testing.T) {
	// Scénario : carte de 30 tirée de 30 → solde 0, carte épuisée.
	gift := activeGift(30)
	store := new(MockGiftStore)
	store.On("Update", mock.Anything, gift).Return(nil)

	newBalance, err := NewGiftHandler(store).Draw(context.Background(), gift, 30)
	require.NoError(t, err)
	assert.Equal(t, 0.0, newBalance)
	assert.Equal(t, models.GiftStatusUsed, gift.Status)
}

func TestGiftDrawOverBalanceRejected(t *testing.T) {
	gift := activeGift(30)
	store := new(MockGiftStore)

	_, err := NewGiftHandler(store).Draw(context.Background(), gift, 45)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientBalance))

	// Rien n'a été écrit ni muté côté statut.
	assert.Equal(t, models.GiftStatusActive, gift.Status)
	assert.Equal(t, 0, gift.UsageCount)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGiftDrawRejectsPercentageKind(t *testing.T) {
	gift := activeGift(0)
	gift.Kind = models.GiftKindPercentage

	_, err := NewGiftHandler(new(MockGiftStore)).Draw(context.Background(), gift, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInstrument))
}

func TestGiftDrawStoreFailure(t *testing.T) {
	gift := activeGift(50)
	store := new(MockGiftStore)
	store.On("Update", mock.Anything, gift).Return(errors.New("db down"))

	_, err := NewGiftHandler(store).Draw(context.Background(), gift, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePersistence))
}
