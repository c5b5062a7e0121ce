package httperr

import "errors"

// Codes métier du cœur agenda/caisse. Aucun n'est fatal : tous se
// résolvent au bord de l'appelant.
const (
	CodeValidation          = "validation_error"
	CodeTimeConflict        = "time_conflict"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInvalidInstrument   = "invalid_instrument"
	CodeIncompletePayment   = "incomplete_payment"
	CodeExcessAmount        = "excess_amount"
	CodeInvalidState        = "invalid_state"
	CodePersistence         = "persistence_error"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrait le code métier, ou "" si l'erreur n'en porte pas.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsExclusionConflict reconnaît la violation d'une contrainte d'exclusion
// Postgres sur (ressource, intervalle). Le schéma actuel n'en déclare
// pas : la pré-vérification optimiste reste la seule garde, deux commits
// concurrents peuvent encore la dépasser.
func IsExclusionConflict(err error) bool {
	if err == nil {
		return false
	}
	return IsBusiness(err, CodeTimeConflict)
}
