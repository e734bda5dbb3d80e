/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Tic-tac-toe rules. Pure functions over TTTState; the reducer in
// room.go dispatches here.

package main

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

type TTTPlayer struct {
	Player
	Mark Mark `json:"mark"`
}

var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// checkWinner returns "X" or "O" for a completed line, "draw" for a
// full board without one, and "" while the game is still open.
func checkWinner(board [9]Mark) string {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != "" && a == b && a == c {
			return string(a)
		}
	}
	for _, cell := range board {
		if cell == "" {
			return ""
		}
	}
	return "draw"
}

// setupTicTacToe seats the first two lobby players as X and O; the
// round is between those two, X to move.
func setupTicTacToe(code string, players []Player) *TTTState {
	return &TTTState{
		Phase: PhaseTTT,
		Code:  code,
		Players: []TTTPlayer{
			{Player: players[0], Mark: MarkX},
			{Player: players[1], Mark: MarkO},
		},
		Turn: MarkX,
	}
}

func applyMove(state RoomState, a Action) RoomState {
	s, ok := state.(*TTTState)
	if !ok {
		return state
	}

	if s.Winner != "" || a.Index == nil {
		return state
	}
	idx := *a.Index
	if idx < 0 || idx > 8 || s.Board[idx] != "" {
		return state
	}

	var mover *TTTPlayer
	for i := range s.Players {
		if s.Players[i].ID == a.PlayerID {
			mover = &s.Players[i]
			break
		}
	}
	if mover == nil || mover.Mark != s.Turn {
		return state
	}

	next := *s
	next.Board[idx] = mover.Mark

	if result := checkWinner(next.Board); result != "" {
		next.Winner = result
		return &next
	}

	if s.Turn == MarkX {
		next.Turn = MarkO
	} else {
		next.Turn = MarkX
	}
	return &next
}
