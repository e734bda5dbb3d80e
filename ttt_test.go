/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTTT() *TTTState {
	return setupTicTacToe("ABCD", []Player{
		{ID: "p1", Name: "Ann"},
		{ID: "p2", Name: "Ben"},
	})
}

func TestCheckWinnerLines(t *testing.T) {
	for _, line := range winLines {
		var board [9]Mark
		for _, idx := range line {
			board[idx] = MarkX
		}
		assert.Equal(t, "X", checkWinner(board), "line %v", line)
	}

	assert.Equal(t, "", checkWinner([9]Mark{}))

	draw := [9]Mark{
		MarkX, MarkO, MarkX,
		MarkX, MarkO, MarkO,
		MarkO, MarkX, MarkX,
	}
	assert.Equal(t, "draw", checkWinner(draw))
}

func TestSetupTicTacToe(t *testing.T) {
	s := newTTT()

	require.Len(t, s.Players, 2)
	assert.Equal(t, MarkX, s.Players[0].Mark)
	assert.Equal(t, MarkO, s.Players[1].Mark)
	assert.Equal(t, MarkX, s.Turn)
	assert.Empty(t, s.Winner)
	assert.Equal(t, [9]Mark{}, s.Board)
}

func TestMoveAppliesAndAlternates(t *testing.T) {
	var state RoomState = newTTT()

	state = Apply(state, Action{Type: ActionMove, PlayerID: "p1", Index: intp(0)}, testRand(1))
	s := state.(*TTTState)
	assert.Equal(t, MarkX, s.Board[0])
	assert.Equal(t, MarkO, s.Turn)

	state = Apply(state, Action{Type: ActionMove, PlayerID: "p2", Index: intp(4)}, testRand(1))
	s = state.(*TTTState)
	assert.Equal(t, MarkO, s.Board[4])
	assert.Equal(t, MarkX, s.Turn)
}

func TestMoveRejections(t *testing.T) {
	s := newTTT()
	rng := testRand(1)

	for name, a := range map[string]Action{
		"no index":      {Type: ActionMove, PlayerID: "p1"},
		"out of range":  {Type: ActionMove, PlayerID: "p1", Index: intp(9)},
		"negative":      {Type: ActionMove, PlayerID: "p1", Index: intp(-1)},
		"not your turn": {Type: ActionMove, PlayerID: "p2", Index: intp(0)},
		"unknown":       {Type: ActionMove, PlayerID: "p9", Index: intp(0)},
	} {
		next := Apply(s, a, rng)
		assert.Same(t, s, next, name)
	}

	occupied := Apply(s, Action{Type: ActionMove, PlayerID: "p1", Index: intp(0)}, rng)
	again := Apply(occupied, Action{Type: ActionMove, PlayerID: "p2", Index: intp(0)}, rng)
	assert.Same(t, occupied, again)
}

func TestWinnerFreezesBoard(t *testing.T) {
	var state RoomState = newTTT()
	rng := testRand(1)

	// X takes the top row, O plays along the middle.
	moves := []Action{
		{Type: ActionMove, PlayerID: "p1", Index: intp(0)},
		{Type: ActionMove, PlayerID: "p2", Index: intp(3)},
		{Type: ActionMove, PlayerID: "p1", Index: intp(1)},
		{Type: ActionMove, PlayerID: "p2", Index: intp(4)},
		{Type: ActionMove, PlayerID: "p1", Index: intp(2)},
	}
	for _, a := range moves {
		state = Apply(state, a, rng)
	}

	s := state.(*TTTState)
	require.Equal(t, "X", s.Winner)

	frozen := Apply(state, Action{Type: ActionMove, PlayerID: "p2", Index: intp(8)}, rng)
	assert.Same(t, state, frozen)
}

func TestFullGameIsDraw(t *testing.T) {
	var state RoomState = newTTT()
	rng := testRand(1)

	// X: 0 1 5 6 8, O: 4 2 3 7 — no line for either.
	order := []struct {
		player string
		index  int
	}{
		{"p1", 0}, {"p2", 4}, {"p1", 1}, {"p2", 2},
		{"p1", 5}, {"p2", 3}, {"p1", 6}, {"p2", 7}, {"p1", 8},
	}
	marks := 0
	for _, m := range order {
		next := Apply(state, Action{Type: ActionMove, PlayerID: m.player, Index: intp(m.index)}, rng)
		require.NotSame(t, state, next)
		state = next
		marks++
	}

	assert.Equal(t, 9, marks)
	assert.Equal(t, "draw", state.(*TTTState).Winner)
}
