package checkout

import (
	"fmt"
	"strings"
)

// ======================================================
// Descriptif de facture
// ======================================================

// Libellés affichés sur la facture et relus par la réimpression.
var methodLabels = map[Method]string{
	MethodCash:     "Espèces",
	MethodCard:     "Carte",
	MethodTerminal: "Terminal",
	MethodGift:     "Carte cadeau",
	MethodMinutes:  "Minutes",
}

func MethodLabel(m Method) string {
	if label, ok := methodLabels[m]; ok {
		return label
	}
	return string(m)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func trimAmount(v float64) string {
	s := formatAmount(v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Description construit le descriptif pipe de la facture. Contrat
// externe : l'outillage de réimpression le découpe sur "|" puis ":",
// l'ordre des champs et les séparateurs ne changent pas.
//   "<item> (<durée> min)" | ... | "Paiements: [<label>: <montant>, ...]"
//   | "Discount (<desc>): -<x>" | "Tip: <x>"
func (l *Ledger) Description() string {
	parts := make([]string, 0, len(l.lines)+3)

	for _, line := range l.lines {
		if line.DurationMin > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d min)", line.Name, line.DurationMin))
		} else {
			parts = append(parts, line.Name)
		}
	}

	if len(l.payments) > 0 {
		entries := make([]string, 0, len(l.payments))
		for _, p := range l.payments {
			entries = append(entries,
				fmt.Sprintf("%s: %s", MethodLabel(p.Method), formatAmount(p.Amount)))
		}
		parts = append(parts, fmt.Sprintf("Paiements: [%s]", strings.Join(entries, ", ")))
	}

	if discount := l.DiscountAmount(); discount > 0 {
		parts = append(parts,
			fmt.Sprintf("Discount (%s): -%s", l.DiscountLabel(), formatAmount(discount)))
	}

	if l.tip > 0 {
		parts = append(parts, fmt.Sprintf("Tip: %s", formatAmount(l.tip)))
	}

	return strings.Join(parts, " | ")
}
