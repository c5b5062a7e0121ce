package stream

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

// ======================================================
// Transport redis (pub/sub)
// ======================================================

// Publisher pousse les mutations locales vers le canal partagé. L'envoi
// est un effet secondaire : un échec est loggé et avalé, jamais
// bloquant pour le commit principal.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Println("stream publish marshal:", err)
		return
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		log.Println("stream publish:", err)
	}
}

// Subscriber écoute le canal et replie chaque événement reçu. Les
// messages illisibles sont ignorés.
type Subscriber struct {
	rdb     *redis.Client
	channel string
}

func NewSubscriber(rdb *redis.Client, channel string) *Subscriber {
	return &Subscriber{rdb: rdb, channel: channel}
}

func (s *Subscriber) Run(ctx context.Context, apply func(Event)) {
	sub := s.rdb.Subscribe(ctx, s.channel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Println("stream subscribe unmarshal:", err)
			continue
		}
		apply(ev)
	}
}
