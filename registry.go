/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Room registry: maps room codes to live hubs.
//
// Codes are four characters from a 32-character alphabet that drops the
// easily confused glyphs (0/O, 1/I). 32 divides 256 evenly, so taking a
// crypto-random byte modulo the alphabet length is unbiased.

package main

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"
)

const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 4
)

func validRoomCode(code string) bool {
	if len(code) != roomCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(roomCodeAlphabet, r) {
			return false
		}
	}
	return true
}

func randomRoomCode() string {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	out := make([]byte, roomCodeLength)
	for i, b := range buf {
		out[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(out)
}

// Registry owns the set of live rooms. A room is evicted when its last
// subscriber detaches; a reaper additionally removes rooms idle past
// the configured session timeout.
type Registry struct {
	mu          sync.Mutex
	rooms       map[string]*Hub
	broker      *Broker
	idleTimeout time.Duration
}

func newRegistry(broker *Broker, idleTimeout time.Duration) *Registry {
	reg := &Registry{
		rooms:       make(map[string]*Hub),
		broker:      broker,
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go reg.reaperLoop()
	}
	return reg
}

// newRoomCode generates a fresh code, retrying on the (unlikely)
// collision with a live room.
func (reg *Registry) newRoomCode() string {
	for {
		code := randomRoomCode()

		reg.mu.Lock()
		_, exists := reg.rooms[code]
		reg.mu.Unlock()

		if !exists {
			return code
		}
	}
}

// getOrCreate returns the hub for code, creating and starting it if
// needed. Used on the host path; players go through lookup.
func (reg *Registry) getOrCreate(cfg *Config, code string) *Hub {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if hub, ok := reg.rooms[code]; ok {
		return hub
	}

	hub := newHub(code, reg)
	reg.rooms[code] = hub
	go hub.run(cfg)
	logf(cfg, "ROOMS: Created room %s", code)
	return hub
}

func (reg *Registry) lookup(code string) (*Hub, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	hub, ok := reg.rooms[code]
	return hub, ok
}

// drop evicts h if it is still registered and has no subscribers left.
func (reg *Registry) drop(h *Hub) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if reg.rooms[h.code] != h || len(h.clients) > 0 || h.stopped {
		return
	}

	h.stopped = true
	delete(reg.rooms, h.code)
	close(h.quit)
}

// reaperLoop periodically removes rooms idle longer than idleTimeout,
// disconnecting any remaining clients.
func (reg *Registry) reaperLoop() {
	ticker := time.NewTicker(reg.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-reg.idleTimeout)

		reg.mu.Lock()
		for code, hub := range reg.rooms {
			hub.mu.Lock()
			if hub.lastActive.After(cutoff) {
				hub.mu.Unlock()
				continue
			}

			hub.stopped = true
			for c := range hub.clients {
				delete(hub.clients, c)
				c.closeSend()
				_ = c.conn.Close()
			}
			delete(reg.rooms, code)
			close(hub.quit)
			hub.mu.Unlock()
		}
		reg.mu.Unlock()
	}
}
