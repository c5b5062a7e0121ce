package notify

import "log"

// ======================================================
// Notifications — dépôt sans garantie
// ======================================================

// Message suit le contrat du dispatcher externe : type, destinataire,
// charge libre.
type Message struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Payload   any    `json:"payload"`
}

// Sender est le collaborateur externe qui livre réellement (SMS, mail,
// push). Ses échecs sont attrapés et ignorés, jamais remontés au
// commit principal.
type Sender interface {
	Post(msg Message) error
}

// LogSender trace les messages en l'absence de canal de livraison réel.
type LogSender struct{}

func (LogSender) Post(msg Message) error {
	log.Printf("notify %s -> %s", msg.Type, msg.Recipient)
	return nil
}

type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.sender.Post(msg); err != nil {
			log.Println("notify error:", err)
		}
	}
}

// Dispatch dépose et oublie : file pleine ou envoi raté, le commit
// appelant n'attend rien.
func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		log.Println("notify queue full, dropping message")
	}
}
