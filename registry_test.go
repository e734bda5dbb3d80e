/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRoomCodeFormat(t *testing.T) {
	for i := 0; i < 256; i++ {
		code := randomRoomCode()
		require.Len(t, code, roomCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "code %q", code)
		}
		assert.NotContainsf(t, code, "0", "code %q", code)
		assert.NotContainsf(t, code, "O", "code %q", code)
		assert.NotContainsf(t, code, "1", "code %q", code)
		assert.NotContainsf(t, code, "I", "code %q", code)
	}
}

func TestValidRoomCode(t *testing.T) {
	assert.True(t, validRoomCode("ABCD"))
	assert.True(t, validRoomCode("2345"))

	assert.False(t, validRoomCode(""))
	assert.False(t, validRoomCode("ABC"))
	assert.False(t, validRoomCode("ABCDE"))
	assert.False(t, validRoomCode("abcd"))
	assert.False(t, validRoomCode("AB0D"))
	assert.False(t, validRoomCode("ABID"))
}

func TestNewRoomCodeAvoidsLiveRooms(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	cfg := &Config{}

	// Occupy a code, then confirm fresh codes never collide with it.
	taken := reg.newRoomCode()
	reg.getOrCreate(cfg, taken)

	for i := 0; i < 64; i++ {
		assert.NotEqual(t, taken, reg.newRoomCode())
	}
}

func TestGetOrCreateReturnsSameHub(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	cfg := &Config{}

	first := reg.getOrCreate(cfg, "ABCD")
	second := reg.getOrCreate(cfg, "ABCD")
	assert.Same(t, first, second)

	found, ok := reg.lookup("ABCD")
	require.True(t, ok)
	assert.Same(t, first, found)

	_, ok = reg.lookup("WXYZ")
	assert.False(t, ok)
}

func TestRoomEvictedWhenLastClientDetaches(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	cfg := &Config{}

	hub := reg.getOrCreate(cfg, "ABCD")
	c := &Client{send: make(chan any, 8), playerID: "p1", isHost: true}
	require.True(t, hub.attach(c))

	hub.detach(c)

	_, ok := reg.lookup("ABCD")
	assert.False(t, ok)

	// The evicted hub refuses late subscribers; the host path then
	// creates a fresh one under the same code.
	late := &Client{send: make(chan any, 8), playerID: "p2"}
	assert.False(t, hub.attach(late))
	assert.NotSame(t, hub, reg.getOrCreate(cfg, "ABCD"))
}

func TestDropKeepsOccupiedRoom(t *testing.T) {
	reg := newRegistry(newBroker(), 0)
	cfg := &Config{}

	hub := reg.getOrCreate(cfg, "ABCD")
	c := &Client{send: make(chan any, 8), playerID: "p1"}
	require.True(t, hub.attach(c))

	reg.drop(hub)

	_, ok := reg.lookup("ABCD")
	assert.True(t, ok)
}
