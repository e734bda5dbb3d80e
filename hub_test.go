/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attachTestClient(t *testing.T, hub *Hub, playerID string, isHost bool) *Client {
	t.Helper()

	c := &Client{send: make(chan any, 8), playerID: playerID, isHost: isHost}
	require.True(t, hub.attach(c))

	// Every subscriber is greeted with its identity and a snapshot.
	info := receive(t, c).(sessionInfo)
	assert.Equal(t, "session.info", info.Type)
	assert.Equal(t, playerID, info.PlayerID)
	assert.Equal(t, isHost, info.IsHost)

	snap := receive(t, c).(stateUpdate)
	assert.Equal(t, "state.update", snap.Type)

	return c
}

func receive(t *testing.T, c *Client) any {
	t.Helper()

	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHubBroadcastsAcceptedActions(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")

	host := attachTestClient(t, hub, "host-1", true)
	player := attachTestClient(t, hub, "p1", false)
	defer hub.detach(host)
	defer hub.detach(player)

	hub.actions <- clientAction{client: player, action: Action{Type: ActionJoin, PlayerID: "p1", Name: "Ann"}}

	for _, c := range []*Client{host, player} {
		update := receive(t, c).(stateUpdate)
		lobby := update.State.(*LobbyState)
		require.Len(t, lobby.Players, 1)
		assert.Equal(t, "Ann", lobby.Players[0].Name)
	}
}

func TestHubStaysSilentOnIllegalActions(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")

	host := attachTestClient(t, hub, "host-1", true)
	defer hub.detach(host)

	// A vote from a player who never joined changes nothing, so no
	// broadcast follows it. The next accepted action's update is the
	// first thing the subscriber sees.
	hub.actions <- clientAction{client: host, action: Action{Type: ActionVote, PlayerID: "ghost", GameID: GameUno}}
	hub.actions <- clientAction{client: host, action: Action{Type: ActionJoin, PlayerID: "p1", Name: "Ann"}}

	update := receive(t, host).(stateUpdate)
	lobby := update.State.(*LobbyState)
	require.Len(t, lobby.Players, 1)
	assert.Empty(t, lobby.Votes)
}

func TestHubPublishesSnapshotsToBroker(t *testing.T) {
	broker := newBroker()
	reg := newRegistry(broker, 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")

	host := attachTestClient(t, hub, "host-1", true)
	defer hub.detach(host)

	updates, cancel := broker.Subscribe("ABCD")
	defer cancel()

	hub.actions <- clientAction{client: host, action: Action{Type: ActionJoin, PlayerID: "p1", Name: "Ann"}}

	select {
	case payload := <-updates:
		var msg struct {
			Type  string `json:"type"`
			State struct {
				Phase   Phase    `json:"phase"`
				Players []Player `json:"players"`
			} `json:"state"`
		}
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, "state.update", msg.Type)
		assert.Equal(t, PhaseLobby, msg.State.Phase)
		require.Len(t, msg.State.Players, 1)
		assert.Equal(t, "Ann", msg.State.Players[0].Name)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broker payload")
	}
}

func TestSnapshotJSON(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")
	defer reg.drop(hub)

	payload := hub.snapshotJSON()
	require.NotNil(t, payload)

	var msg struct {
		Type  string `json:"type"`
		State struct {
			Phase Phase  `json:"phase"`
			Code  string `json:"code"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "state.update", msg.Type)
	assert.Equal(t, PhaseLobby, msg.State.Phase)
	assert.Equal(t, "ABCD", msg.State.Code)
}

func TestDroppedClientReaderFailsQuietly(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")

	host := attachTestClient(t, hub, "host-1", true)
	defer hub.detach(host)

	// Two slots hold exactly the attach greeting, so the first
	// broadcast overflows and cuts the client loose.
	stuck := &Client{send: make(chan any, 2), playerID: "p2"}
	require.True(t, hub.attach(stuck))

	hub.actions <- clientAction{action: Action{Type: ActionJoin, PlayerID: "p1", Name: "Ann"}}
	receive(t, host)

	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		gone := !hub.clients[stuck]
		hub.mu.RUnlock()
		if gone {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("overflowed subscriber still attached")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The dropped client's reader still reports errors through
	// trySend; that must fail quietly, never crash the room.
	assert.NotPanics(t, func() {
		assert.False(t, stuck.trySend(errorMessage{Type: "error", Message: "Host only"}))
	})

	// The reader's eventual detach must tolerate the earlier close.
	assert.NotPanics(t, func() { hub.detach(stuck) })
}

func TestSlowSubscriberIsDroppedNotBlocking(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	hub := reg.getOrCreate(&Config{}, "ABCD")

	host := attachTestClient(t, hub, "host-1", true)
	defer hub.detach(host)

	// A subscriber that never drains its buffer is cut loose once the
	// buffer overflows, instead of stalling the room.
	stuck := &Client{send: make(chan any, 2), playerID: "p2"}
	require.True(t, hub.attach(stuck))

	for i := 0; i < 4; i++ {
		hub.actions <- clientAction{action: Action{Type: ActionJoin, PlayerID: string(rune('a' + i)), Name: "x"}}
	}

	// Drain the healthy subscriber to confirm the hub kept going.
	for i := 0; i < 4; i++ {
		receive(t, host)
	}

	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		gone := !hub.clients[stuck]
		hub.mu.RUnlock()
		if gone {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("slow subscriber still attached")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
