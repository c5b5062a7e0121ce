package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/models"
)

func TestOpenCheckoutGroupsDay(t *testing.T) {
	invoiced := uint(99)
	appointments := new(MockAppointmentStore)
	appointments.On("ListActiveForDay", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Appointment{
			{ID: 1, ClientID: 7, Kind: models.AppointmentKindService,
				ServiceName: "Sauna", DurationMin: 30, ServicePrice: 25},
			{ID: 2, ClientID: 7, Kind: models.AppointmentKindService,
				ServiceName: "Massage suédois", DurationMin: 60, ServicePrice: 90},
			// Écartés : autre client, block, déjà facturé.
			{ID: 3, ClientID: 8, Kind: models.AppointmentKindService},
			{ID: 4, ClientID: 7, Kind: models.AppointmentKindBlock},
			{ID: 5, ClientID: 7, Kind: models.AppointmentKindService, InvoiceID: &invoiced},
		}, nil)

	sessions := NewRegistry()
	session, err := NewOpenCheckout(appointments, sessions).Execute(
		context.Background(),
		OpenCheckoutInput{ClientID: 7, Date: "2026-03-02"},
	)
	require.NoError(t, err)

	lines := session.Ledger.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].AppointmentID)
	assert.Equal(t, uint(2), lines[1].AppointmentID)
	assert.Equal(t, 115.0, session.Ledger.Subtotal())
	assert.Equal(t, 90, session.Ledger.ServicedMinutes())
}

func TestOpenCheckoutQueriesWholeDay(t *testing.T) {
	appointments := new(MockAppointmentStore)
	appointments.On("ListActiveForDay", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Appointment{}, nil).
		Run(func(args mock.Arguments) {
			start := args.Get(1).(time.Time)
			end := args.Get(2).(time.Time)
			assert.Equal(t, 24*time.Hour, end.Sub(start))
		})

	_, err := NewOpenCheckout(appointments, NewRegistry()).Execute(
		context.Background(),
		OpenCheckoutInput{ClientID: 7, Date: "2026-03-02"},
	)
	require.NoError(t, err)
}

func TestOpenCheckoutValidation(t *testing.T) {
	uc := NewOpenCheckout(new(MockAppointmentStore), NewRegistry())

	_, err := uc.Execute(context.Background(), OpenCheckoutInput{ClientID: 0, Date: "2026-03-02"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = uc.Execute(context.Background(), OpenCheckoutInput{ClientID: 7, Date: "02/03/2026"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}
