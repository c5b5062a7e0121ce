package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/checkout"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
	"github.com/ApollonSMK/MEXperience-sub000/internal/notify"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

// --------------------------------------------------
// Doublures
// --------------------------------------------------

type MockAppointmentStore struct{ mock.Mock }

func (m *MockAppointmentStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *MockAppointmentStore) ListActiveForDay(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {
	args := m.Called(ctx, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

type MockInvoiceStore struct{ mock.Mock }

func (m *MockInvoiceStore) Insert(ctx context.Context, invoice *models.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

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

type stubAuditor struct{ events []audit.Event }

func (s *stubAuditor) Dispatch(ev audit.Event) { s.events = append(s.events, ev) }

type stubNotifier struct{ messages []notify.Message }

func (s *stubNotifier) Dispatch(msg notify.Message) { s.messages = append(s.messages, msg) }

type stubPublisher struct{ events []stream.Event }

func (s *stubPublisher) Publish(_ context.Context, ev stream.Event) {
	s.events = append(s.events, ev)
}

type settleFixture struct {
	uc       *SettleCheckout
	sessions *Registry

	appointments *MockAppointmentStore
	invoices     *MockInvoiceStore
	gifts        *MockGiftStore
	clients      *MockClientStore

	auditor   *stubAuditor
	notifier  *stubNotifier
	publisher *stubPublisher
}

func newSettleFixture() *settleFixture {
	f := &settleFixture{
		sessions:     NewRegistry(),
		appointments: new(MockAppointmentStore),
		invoices:     new(MockInvoiceStore),
		gifts:        new(MockGiftStore),
		clients:      new(MockClientStore),
		auditor:      &stubAuditor{},
		notifier:     &stubNotifier{},
		publisher:    &stubPublisher{},
	}

	f.uc = NewSettleCheckout(
		f.sessions,
		f.appointments,
		f.invoices,
		payment.NewGiftHandler(f.gifts),
		payment.NewMinutesHandler(f.clients),
		f.auditor,
		f.notifier,
		f.publisher,
	)
	return f
}

// openSession pose un panier d'un soin de 60 minutes à 90.
func openSession(f *settleFixture, clientID uint) *Session {
	session := f.sessions.Open(clientID)
	_ = session.Ledger.AddLine(domain.Line{
		AppointmentID: 11,
		Name:          "Massage suédois",
		DurationMin:   60,
		Price:         90,
	})
	return session
}

func confirmedAppointment(id uint) *models.Appointment {
	return &models.Appointment{
		ID:          id,
		ClientID:    7,
		StartTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		DurationMin: 60,
		Kind:        models.AppointmentKindService,
		ServiceName: "Massage suédois",
		Status:      models.AppointmentStatusConfirmed,
	}
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestSettleFullFlow(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)
	_, err := session.Ledger.AddPayment(domain.MethodCash, 90, nil)
	require.NoError(t, err)

	ap := confirmedAppointment(11)
	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Invoice).ID = 42
	})
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).Return(ap, nil)
	f.appointments.On("UpdateAppointment", mock.Anything, ap).Return(nil)

	invoice, err := f.uc.Execute(context.Background(), SettleCheckoutInput{
		UserID:    1,
		SessionID: session.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 90.0, invoice.Total)
	assert.Contains(t, invoice.Number, "FAC-")
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, "cash", invoice.Payments[0].Method)

	// Rendez-vous terminé, rattaché à la facture, diffusé en update.
	assert.Equal(t, models.AppointmentStatusCompleted, ap.Status)
	assert.Equal(t, "cash", ap.PaymentMethod)
	require.NotNil(t, ap.InvoiceID)
	assert.Equal(t, uint(42), *ap.InvoiceID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, stream.EventUpdate, f.publisher.events[0].Type)

	// Audit + reçu déposés, session retirée du registre.
	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "checkout_settled", f.auditor.events[0].Action)
	require.Len(t, f.notifier.messages, 1)
	_, err = f.sessions.Get(session.ID)
	assert.Error(t, err)
}

func TestSettleIncompletePaymentRejected(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)
	_, err := session.Ledger.AddPayment(domain.MethodCash, 50, nil)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeIncompletePayment))

	// Rien n'a été écrit, la session reste ouverte.
	f.invoices.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	assert.NotEqual(t, domain.StageSettled, session.Ledger.Stage())
	_, err = f.sessions.Get(session.ID)
	assert.NoError(t, err)
}

func TestSettleUnknownSession(t *testing.T) {
	f := newSettleFixture()

	_, err := f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: "nope"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestSettleTwiceRejected(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)
	_, err := session.Ledger.AddPayment(domain.MethodCash, 90, nil)
	require.NoError(t, err)

	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).Return(confirmedAppointment(11), nil)
	f.appointments.On("UpdateAppointment", mock.Anything, mock.Anything).Return(nil)

	_, err = f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	require.NoError(t, err)

	// La session fermée, un second règlement ne trouve plus rien : les
	// instruments ne seront jamais tirés deux fois.
	_, err = f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
	f.invoices.AssertNumberOfCalls(t, "Insert", 1)
}

func TestSettleDrawsGiftCard(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)

	_, err := session.Ledger.AddPayment(domain.MethodCash, 60, nil)
	require.NoError(t, err)
	_, err = session.Ledger.AddPayment(domain.MethodGift, 30, domain.GiftDetail{
		GiftCodeID: 4,
		Code:       "GC-123",
	})
	require.NoError(t, err)

	gift := &models.GiftCode{
		ID:      4,
		Code:    "GC-123",
		Kind:    models.GiftKindFixed,
		Balance: 30,
		Status:  models.GiftStatusActive,
	}
	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).Return(confirmedAppointment(11), nil)
	f.appointments.On("UpdateAppointment", mock.Anything, mock.Anything).Return(nil)
	f.gifts.On("Lookup", mock.Anything, "GC-123").Return(gift, nil)
	f.gifts.On("Update", mock.Anything, gift).Return(nil)

	invoice, err := f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	require.NoError(t, err)

	// Carte tirée de 30 → épuisée, désactivée ; la ligne de facture
	// référence la carte.
	assert.Equal(t, 0.0, gift.Balance)
	assert.Equal(t, models.GiftStatusUsed, gift.Status)
	require.Len(t, invoice.Payments, 2)
	require.NotNil(t, invoice.Payments[1].GiftCodeID)
	assert.Equal(t, uint(4), *invoice.Payments[1].GiftCodeID)
}

func TestSettleDebitsMinutes(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)

	_, err := session.Ledger.AddPayment(
		domain.MethodMinutes,
		0,
		domain.MinutesDetail{Minutes: session.Ledger.ServicedMinutes()},
	)
	require.NoError(t, err)

	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).Return(confirmedAppointment(11), nil)
	f.appointments.On("UpdateAppointment", mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetClient", mock.Anything, uint(7)).Return(&models.Client{
		ID:                 7,
		MinutesBalance:     120,
		SubscriptionActive: true,
	}, nil)
	f.clients.On("UpdateMinutes", mock.Anything, uint(7), 60).Return(nil)

	invoice, err := f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	require.NoError(t, err)

	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, "minutes", invoice.Payments[0].Method)
	assert.Equal(t, 90.0, invoice.Payments[0].Amount)
	assert.Equal(t, 60, invoice.Payments[0].MinutesDebited)
	f.clients.AssertExpectations(t)
}

func TestSettleDebitsMinutesOnce(t *testing.T) {
	// Une entrée minutes solde la note ; en redemander une deuxième est
	// refusé, et le règlement ne débite le solde qu'une seule fois.
	f := newSettleFixture()
	session := openSession(f, 7)

	_, err := session.Ledger.AddPayment(
		domain.MethodMinutes,
		0,
		domain.MinutesDetail{Minutes: session.Ledger.ServicedMinutes()},
	)
	require.NoError(t, err)

	_, err = session.Ledger.AddPayment(
		domain.MethodMinutes,
		0,
		domain.MinutesDetail{Minutes: session.Ledger.ServicedMinutes()},
	)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeExcessAmount))

	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).Return(confirmedAppointment(11), nil)
	f.appointments.On("UpdateAppointment", mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetClient", mock.Anything, uint(7)).Return(&models.Client{
		ID:                 7,
		MinutesBalance:     120,
		SubscriptionActive: true,
	}, nil)
	f.clients.On("UpdateMinutes", mock.Anything, uint(7), 60).Return(nil)

	invoice, err := f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	require.NoError(t, err)

	require.Len(t, invoice.Payments, 1)
	f.clients.AssertNumberOfCalls(t, "UpdateMinutes", 1)
}

func TestSettleInvoiceFailureStopsBeforeSideEffects(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)
	_, err := session.Ledger.AddPayment(domain.MethodCash, 90, nil)
	require.NoError(t, err)

	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err = f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePersistence))

	// Le ledger est figé mais aucun rendez-vous n'a bougé.
	assert.Equal(t, domain.StageSettled, session.Ledger.Stage())
	f.appointments.AssertNotCalled(t, "GetAppointment", mock.Anything, mock.Anything)
}

func TestSettleSecondaryFailuresAreSwallowed(t *testing.T) {
	f := newSettleFixture()
	session := openSession(f, 7)
	_, err := session.Ledger.AddPayment(domain.MethodGift, 90, domain.GiftDetail{
		GiftCodeID: 4,
		Code:       "GC-123",
	})
	require.NoError(t, err)

	f.invoices.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.appointments.On("GetAppointment", mock.Anything, uint(11)).
		Return(nil, errors.New("gone"))
	f.gifts.On("Lookup", mock.Anything, "GC-123").Return(nil, errors.New("db down"))

	// Rendez-vous introuvable et carte invérifiable : tracés, avalés.
	invoice, err := f.uc.Execute(context.Background(), SettleCheckoutInput{SessionID: session.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, invoice.Number)
	require.Len(t, f.notifier.messages, 1)
}
