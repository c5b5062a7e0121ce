package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

type MockClientStore struct{ mock.Mock }

func (m *MockClientStore) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientStore) UpdateMinutes(ctx context.Context, id uint, balance int) error {
	return m.Called(ctx, id, balance).Error(0)
}

func subscriber(minutes int) *models.Client {
	return &models.Client{
		ID:                 9,
		Name:               "Claire",
		MinutesBalance:     minutes,
		SubscriptionPlan:   "Solaire 120",
		SubscriptionActive: true,
	}
}

func TestMinutesVerify(t *testing.T) {
	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(9)).Return(subscriber(120), nil)

	bal, err := NewMinutesHandler(store).Verify(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 120, bal.Balance)
	assert.True(t, bal.ActiveSubscription)
}

func TestMinutesVerifyUnknownClient(t *testing.T) {
	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(1)).Return(nil, errors.New("not found"))

	_, err := NewMinutesHandler(store).Verify(context.Background(), 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInstrument))
}

func TestMinutesDraw(t *testing.T) {
	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(9)).Return(subscriber(120), nil)
	store.On("UpdateMinutes", mock.Anything, uint(9), 30).Return(nil)

	newBalance, err := NewMinutesHandler(store).Draw(context.Background(), 9, 90)
	require.NoError(t, err)
	assert.Equal(t, 30, newBalance)
	store.AssertExpectations(t)
}

func TestMinutesDrawInsufficientBalance(t *testing.T) {
	// Scénario : 45 minutes demandées contre un solde de 20 → refus,
	// aucun débit.
	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(9)).Return(subscriber(20), nil)

	_, err := NewMinutesHandler(store).Draw(context.Background(), 9, 45)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientBalance))
	store.AssertNotCalled(t, "UpdateMinutes", mock.Anything, mock.Anything, mock.Anything)
}

func TestMinutesDrawRequiresActiveSubscription(t *testing.T) {
	client := subscriber(120)
	client.SubscriptionActive = false

	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(9)).Return(client, nil)

	_, err := NewMinutesHandler(store).Draw(context.Background(), 9, 30)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInstrument))
}

func TestMinutesDrawRejectsNonPositive(t *testing.T) {
	_, err := NewMinutesHandler(new(MockClientStore)).Draw(context.Background(), 9, 0)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestMinutesDrawStoreFailure(t *testing.T) {
	store := new(MockClientStore)
	store.On("GetClient", mock.Anything, uint(9)).Return(subscriber(120), nil)
	store.On("UpdateMinutes", mock.Anything, uint(9), 90).Return(errors.New("db down"))

	_, err := NewMinutesHandler(store).Draw(context.Background(), 9, 30)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePersistence))
}
