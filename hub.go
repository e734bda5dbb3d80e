/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Per-room hub: the single writer for one room's state.
//
// Every connected browser (host included) is a Client with a buffered
// send channel. Actions are funneled through one channel into run(), so
// a transition is fully applied and broadcast before the next action is
// read. Broadcasts are always full snapshots: state transfer stays
// idempotent and a late joiner heals itself from the next update.
//
// Disconnected players stay in the room state as ghost seats; only the
// subscriber set shrinks. Mobile browsers drop sockets transiently, and
// removing a mid-game player would break turn order.

package main

import (
	"encoding/json"
	"log"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Messages sent to clients.
type stateUpdate struct {
	Type  string    `json:"type"` // "state.update"
	State RoomState `json:"state"`
}

type sessionInfo struct {
	Type     string `json:"type"` // "session.info"
	PlayerID string `json:"playerId"`
	IsHost   bool   `json:"isHost"`
}

type errorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	playerID string
	isHost   bool

	mu     sync.Mutex
	closed bool
	send   chan any
}

// trySend queues msg unless the client is backed up or already cut
// loose. The reader keeps calling this after a broadcast overflow has
// dropped the client, so it must tolerate a closed channel.
func (c *Client) trySend(msg any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once. The caller must have
// already removed the client from the hub's subscriber map, so no
// broadcast can still be sending to it.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

type clientAction struct {
	client *Client
	action Action
}

type Hub struct {
	code string
	reg  *Registry

	mu         sync.RWMutex
	clients    map[*Client]bool
	state      RoomState
	lastActive time.Time
	stopped    bool

	actions chan clientAction
	quit    chan struct{}

	rng *rand.Rand
}

func newHub(code string, reg *Registry) *Hub {
	return &Hub{
		code:       code,
		reg:        reg,
		clients:    make(map[*Client]bool),
		state:      NewLobby(code),
		lastActive: time.Now(),
		actions:    make(chan clientAction, 16),
		quit:       make(chan struct{}),
		rng:        newRand(),
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case ca := <-h.actions:
			h.handleAction(cfg, ca)
		case <-h.quit:
			return
		}
	}
}

// handleAction applies one action and, if the state changed, broadcasts
// the new snapshot to every subscriber and the broker channel. Illegal
// actions change nothing and trigger no broadcast.
func (h *Hub) handleAction(cfg *Config, ca clientAction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}

	next := Apply(h.state, ca.action, h.rng)
	if next == h.state {
		return
	}

	h.state = next
	h.lastActive = time.Now()
	logf(cfg, "ROOMS: %s applied %s", h.code, ca.action.Type)

	h.broadcastStateLocked()
}

// broadcastStateLocked assumes h.mu is held.
func (h *Hub) broadcastStateLocked() {
	msg := stateUpdate{Type: "state.update", State: h.state}

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			client.closeSend()
		}
	}

	if h.reg.broker != nil {
		if payload, err := json.Marshal(msg); err == nil {
			h.reg.broker.Publish(h.code, payload)
		}
	}
}

// snapshotJSON renders the current state as a state.update payload.
func (h *Hub) snapshotJSON() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()

	payload, err := json.Marshal(stateUpdate{Type: "state.update", State: h.state})
	if err != nil {
		return nil
	}
	return payload
}

// attach registers a new subscriber and sends it the current snapshot.
// Returns false if the hub has already been evicted.
func (h *Hub) attach(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return false
	}

	h.clients[c] = true
	h.lastActive = time.Now()

	c.send <- sessionInfo{Type: "session.info", PlayerID: c.playerID, IsHost: c.isHost}
	c.send <- stateUpdate{Type: "state.update", State: h.state}
	return true
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	empty := len(h.clients) == 0
	h.mu.Unlock()

	c.closeSend()

	if empty {
		h.reg.drop(h)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "partyroom_id"

// getOrSetPlayerID gives each browser a stable opaque identity via
// cookie, so reconnects keep the same seat.
func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// serveRoomWS upgrades a connection and binds it to the room named in
// the URL. The host endpoint creates the room on first connect; the
// player endpoint reports a missing room to that client only.
func serveRoomWS(cfg *Config, reg *Registry, asHost bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if !validRoomCode(code) {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
			isHost:   asHost,
		}

		var hub *Hub
		if asHost {
			for {
				hub = reg.getOrCreate(cfg, code)
				if hub.attach(client) {
					break
				}
			}
		} else {
			h, ok := reg.lookup(code)
			if !ok || !h.attach(client) {
				_ = conn.WriteJSON(errorMessage{Type: "error", Message: "Room not found"})
				_ = conn.Close()
				return
			}
			hub = h
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.detach(c)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var a Action
		if err := json.Unmarshal(raw, &a); err != nil {
			c.trySend(errorMessage{Type: "error", Message: "Invalid message"})
			continue
		}
		if a.Type == "" {
			continue
		}

		if strings.HasPrefix(a.Type, "host.") && !c.isHost {
			c.trySend(errorMessage{Type: "error", Message: "Host only"})
			continue
		}

		// Identity is the connection's cookie, never client-supplied.
		if strings.HasPrefix(a.Type, "player.") {
			a.PlayerID = c.playerID
		}

		select {
		case h.actions <- clientAction{client: c, action: a}:
		case <-h.quit:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
