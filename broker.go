/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// In-process pub/sub broker: the second relay binding.
//
// Every accepted mutation is published to the room's topic as the full
// JSON snapshot, alongside the WebSocket fan-out. Anything can attach a
// subscriber — the SSE endpoint does, and an embedding process can do
// the same to consume state without speaking WebSocket.

package main

import "sync"

type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[chan []byte]struct{}
}

func newBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel of snapshot payloads for one room topic
// and a cancel func that must be called to release it.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	ch := make(chan []byte, 8)

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[chan []byte]struct{})
		b.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if subs, ok := b.topics[topic]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(b.topics, topic)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers payload to every subscriber of topic. Slow
// subscribers are skipped rather than blocking the room's writer; they
// heal from the next snapshot.
func (b *Broker) Publish(topic string, payload []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.topics[topic] {
		select {
		case ch <- payload:
		default:
		}
	}
}
