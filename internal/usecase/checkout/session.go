package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/checkout"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
)

// ======================================================
// Sessions de caisse en cours
// ======================================================

// Session lie un ledger à un client le temps d'un encaissement. L'état
// vit en mémoire : une session abandonnée n'a rien écrit en base.
type Session struct {
	ID       string
	ClientID uint
	Ledger   *domain.Ledger

	CreatedAt time.Time
}

// Registry garde les sessions ouvertes, indexées par identifiant. Une
// seule caisse par client à la fois n'est pas imposée : deux sessions
// sont simplement deux ledgers indépendants.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) Open(clientID uint) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Ledger:    domain.NewLedger(),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	return s, nil
}

// Close retire la session du registre. Appelé au règlement comme à
// l'abandon ; le ledger réglé reste lisible par qui en garde la main.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
