package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionFullBreakdown(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.AddLine(Line{AppointmentID: 1, Name: "Massage", DurationMin: 60, Price: 80}))
	require.NoError(t, l.AddLine(Line{Name: "Huile essentielle", Price: 12}))
	require.NoError(t, l.SetDiscount(10, DiscountPercent))
	require.NoError(t, l.SetTip(5))

	_, err := l.AddPayment(MethodCash, 50, nil)
	require.NoError(t, err)
	_, err = l.AddPayment(MethodGift, 37.8, GiftDetail{GiftCodeID: 2, Code: "GC-1"})
	require.NoError(t, err)

	desc := l.Description()
	assert.Equal(t,
		"Massage (60 min) | Huile essentielle | "+
			"Paiements: [Espèces: 50.00, Carte cadeau: 37.80] | "+
			"Discount (10%): -9.20 | Tip: 5.00",
		desc)
}

// La réimpression découpe sur "|" puis ":" : l'ordre des champs et les
// séparateurs sont un contrat externe.
func TestDescriptionFieldOrderStable(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.AddLine(Line{AppointmentID: 1, Name: "Manucure", DurationMin: 45, Price: 40}))
	require.NoError(t, l.SetDiscount(5, DiscountFixed))
	require.NoError(t, l.SetTip(2))
	_, err := l.AddPayment(MethodCard, 37, nil)
	require.NoError(t, err)

	fields := strings.Split(l.Description(), " | ")
	require.Len(t, fields, 4)
	assert.Equal(t, "Manucure (45 min)", fields[0])
	assert.True(t, strings.HasPrefix(fields[1], "Paiements: ["))
	assert.True(t, strings.HasPrefix(fields[2], "Discount ("))
	assert.True(t, strings.HasPrefix(fields[3], "Tip: "))
}

func TestDescriptionOmitsEmptySegments(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.AddLine(Line{AppointmentID: 1, Name: "Massage", DurationMin: 60, Price: 80}))

	assert.Equal(t, "Massage (60 min)", l.Description())
}

func TestDescriptionFixedDiscountLabel(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.AddLine(Line{Name: "Soin visage", DurationMin: 30, Price: 50}))
	require.NoError(t, l.SetDiscount(12.5, DiscountFixed))

	assert.Contains(t, l.Description(), "Discount (12.50): -12.50")
}

func TestMethodLabels(t *testing.T) {
	assert.Equal(t, "Espèces", MethodLabel(MethodCash))
	assert.Equal(t, "Minutes", MethodLabel(MethodMinutes))
	assert.Equal(t, "mixed", MethodLabel(MethodMixed))
}
