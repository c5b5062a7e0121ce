package checkout

// Detail est l'union étiquetée des métadonnées par instrument : chaque
// sorte ne porte que ses propres champs, les méthodes simples (espèces,
// carte, terminal) n'en ont pas.
type Detail interface {
	isDetail()
}

// GiftDetail référence la carte cadeau tirée au règlement.
type GiftDetail struct {
	GiftCodeID uint   `json:"gift_code_id"`
	Code       string `json:"code"`
}

// MinutesDetail porte les minutes à débiter du solde du client : la
// durée cumulée des rendez-vous du panier.
type MinutesDetail struct {
	Minutes int `json:"minutes"`
}

func (GiftDetail) isDetail()    {}
func (MinutesDetail) isDetail() {}
