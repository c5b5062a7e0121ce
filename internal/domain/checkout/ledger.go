package checkout

import (
	"math"

	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
)

// ======================================================
// Caisse — session de règlement multi-instruments
// ======================================================

type Stage string

const (
	StageCart    Stage = "cart"
	StageTips    Stage = "tips"
	StagePayment Stage = "payment"
	StageSettled Stage = "settled"
)

type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodTerminal Method = "terminal"
	MethodGift     Method = "gift"
	MethodMinutes  Method = "minutes"
	// MethodMixed marque un rendez-vous réglé par plus d'un instrument.
	MethodMixed Method = "mixed"
)

type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Tolérances en euros : un règlement est recevable à ±5 centimes près,
// un surpaiement toléré jusqu'à 1 centime.
const (
	SettleTolerance = 0.05
	ExcessTolerance = 0.01
)

// Line est une unité facturable : un rendez-vous du jour ou un extra
// ad hoc (AppointmentID nul).
type Line struct {
	AppointmentID uint    `json:"appointment_id"`
	Name          string  `json:"name"`
	DurationMin   int     `json:"duration_min"`
	Price         float64 `json:"price"`
}

// Payment est une entrée de paiement partielle. Detail ne porte que les
// champs propres à l'instrument (carte cadeau, minutes) ; nil pour les
// méthodes simples.
type Payment struct {
	ID     int     `json:"id"`
	Method Method  `json:"method"`
	Amount float64 `json:"amount"`
	Detail Detail  `json:"detail,omitempty"`
}

// Snapshot est l'état arithmétique courant de la session.
type Snapshot struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Tip       float64 `json:"tip"`
	Total     float64 `json:"total"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
}

// Ledger est l'objet mutable d'une session de caisse. Une seule session
// le possède ; rien n'est partagé entre sessions. Les trois premières
// étapes se traversent librement, settled est terminal.
type Ledger struct {
	stage Stage

	lines []Line

	discountValue float64
	discountKind  DiscountKind
	hasDiscount   bool

	tip float64

	payments  []Payment
	nextPayID int
}

func NewLedger() *Ledger {
	return &Ledger{
		stage:     StageCart,
		nextPayID: 1,
	}
}

// --------------------------------------------------
// Étapes
// --------------------------------------------------

func (l *Ledger) Stage() Stage {
	return l.stage
}

// SetStage navigue entre cart, tips et payment. Une session réglée ne
// revient jamais en arrière.
func (l *Ledger) SetStage(s Stage) error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	switch s {
	case StageCart, StageTips, StagePayment:
		l.stage = s
		return nil
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
}

// --------------------------------------------------
// Panier / remise / pourboire
// --------------------------------------------------

func (l *Ledger) AddLine(line Line) error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if line.Price < 0 {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	l.lines = append(l.lines, line)
	return nil
}

func (l *Ledger) Lines() []Line {
	return l.lines
}

// SetDiscount pose l'unique descripteur de remise de la session. Le
// montant effectif est borné à [0, sous-total] au moment du calcul.
func (l *Ledger) SetDiscount(value float64, kind DiscountKind) error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if value < 0 {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	l.discountValue = value
	l.discountKind = kind
	l.hasDiscount = true
	return nil
}

func (l *Ledger) ClearDiscount() {
	l.discountValue = 0
	l.hasDiscount = false
}

func (l *Ledger) SetTip(amount float64) error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if amount < 0 {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	l.tip = amount
	return nil
}

// --------------------------------------------------
// Arithmétique
// --------------------------------------------------

func (l *Ledger) Subtotal() float64 {
	var sum float64
	for _, line := range l.lines {
		sum += line.Price
	}
	return sum
}

func (l *Ledger) DiscountAmount() float64 {
	if !l.hasDiscount {
		return 0
	}
	subtotal := l.Subtotal()

	amount := l.discountValue
	if l.discountKind == DiscountPercent {
		amount = subtotal * l.discountValue / 100
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// DiscountLabel décrit la remise pour la facture : "10%" ou "15.00".
func (l *Ledger) DiscountLabel() string {
	if !l.hasDiscount {
		return ""
	}
	if l.discountKind == DiscountPercent {
		return trimAmount(l.discountValue) + "%"
	}
	return formatAmount(l.discountValue)
}

func (l *Ledger) Tip() float64 {
	return l.tip
}

func (l *Ledger) Total() float64 {
	return math.Max(0, l.Subtotal()-l.DiscountAmount()) + l.tip
}

func (l *Ledger) Paid() float64 {
	var sum float64
	for _, p := range l.payments {
		sum += p.Amount
	}
	return sum
}

func (l *Ledger) Remaining() float64 {
	return math.Max(0, l.Total()-l.Paid())
}

func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Subtotal:  l.Subtotal(),
		Discount:  l.DiscountAmount(),
		Tip:       l.tip,
		Total:     l.Total(),
		Paid:      l.Paid(),
		Remaining: l.Remaining(),
	}
}

// ServicedMinutes est la durée cumulée des rendez-vous du panier, la
// valeur débitée par un paiement en minutes. Les extras n'en portent pas.
func (l *Ledger) ServicedMinutes() int {
	var sum int
	for _, line := range l.lines {
		if line.AppointmentID != 0 {
			sum += line.DurationMin
		}
	}
	return sum
}

// AppointmentIDs liste les rendez-vous liés au panier, à marquer
// terminés au règlement.
func (l *Ledger) AppointmentIDs() []uint {
	var ids []uint
	for _, line := range l.lines {
		if line.AppointmentID != 0 {
			ids = append(ids, line.AppointmentID)
		}
	}
	return ids
}

// --------------------------------------------------
// Paiements
// --------------------------------------------------

// AddPayment ajoute une entrée. Les méthodes ordinaires refusent de
// dépasser le restant dû (excess_amount au-delà d'un centime). Les
// minutes ne couvrent jamais partiellement : le montant inséré vaut
// exactement le restant à l'instant de l'insertion, et l'entrée porte
// les minutes à débiter.
func (l *Ledger) AddPayment(method Method, requested float64, detail Detail) (Payment, error) {
	if l.stage == StageSettled {
		return Payment{}, httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if requested < 0 {
		return Payment{}, httperr.ErrBusiness(httperr.CodeValidation)
	}

	amount := requested
	if method == MethodMinutes {
		if _, ok := detail.(MinutesDetail); !ok {
			return Payment{}, httperr.ErrBusiness(httperr.CodeValidation)
		}
		// Une seule entrée minutes par session : elle solde le restant
		// en entier, une deuxième ne couvrirait rien et débiterait
		// quand même les minutes servies.
		for _, p := range l.payments {
			if p.Method == MethodMinutes {
				return Payment{}, httperr.ErrBusiness(httperr.CodeExcessAmount)
			}
		}
		if l.Remaining() <= 0 {
			return Payment{}, httperr.ErrBusiness(httperr.CodeExcessAmount)
		}
		amount = l.Remaining()
	} else if requested > l.Remaining()+ExcessTolerance {
		return Payment{}, httperr.ErrBusiness(httperr.CodeExcessAmount)
	}

	p := Payment{
		ID:     l.nextPayID,
		Method: method,
		Amount: amount,
		Detail: detail,
	}
	l.nextPayID++
	l.payments = append(l.payments, p)
	return p, nil
}

func (l *Ledger) RemovePayment(id int) error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	for i, p := range l.payments {
		if p.ID == id {
			l.payments = append(l.payments[:i], l.payments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeValidation)
}

func (l *Ledger) Payments() []Payment {
	return l.payments
}

// --------------------------------------------------
// Règlement
// --------------------------------------------------

func (l *Ledger) Settleable() bool {
	return math.Abs(l.Total()-l.Paid()) <= SettleTolerance
}

// Settle fige la session. Refusé tant que le payé ne rejoint pas le
// total à la tolérance près, et refusé une seconde fois : les
// instruments ne sont jamais tirés deux fois.
func (l *Ledger) Settle() error {
	if l.stage == StageSettled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if !l.Settleable() {
		return httperr.ErrBusiness(httperr.CodeIncompletePayment)
	}
	l.stage = StageSettled
	return nil
}

// SettledMethod est la méthode à inscrire sur les rendez-vous terminés :
// l'unique méthode employée, ou mixed dès qu'il y a plus d'une entrée.
func (l *Ledger) SettledMethod() Method {
	switch len(l.payments) {
	case 0:
		return ""
	case 1:
		return l.payments[0].Method
	default:
		return MethodMixed
	}
}
