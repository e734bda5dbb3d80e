/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Room state for the party game server.
//
// Each room holds exactly one phase at a time: the lobby, or one of the
// four mini-games. Phases are modeled as a sealed set of pointer structs
// behind the RoomState interface, so the reducer can type-switch
// exhaustively and impossible field combinations cannot be represented.
//
// All transitions go through Apply. Illegal or stale actions return the
// input state unchanged (same pointer) and never panic: a confused or
// malicious client must not be able to crash or corrupt a room. Callers
// compare the returned state against the input to decide whether to
// broadcast.

package main

import (
	"math/rand/v2"
	"strings"
)

type GameID string

const (
	GameTicTacToe GameID = "tic-tac-toe"
	GameWordWall  GameID = "word-wall"
	GameCodenames GameID = "codenames"
	GameUno       GameID = "uno"
)

// gameOrder is the vote tie-break order: the first enumerated game with
// the highest vote count wins.
var gameOrder = []GameID{GameTicTacToe, GameWordWall, GameCodenames, GameUno}

type GameInfo struct {
	ID            GameID `json:"id"`
	Name          string `json:"name"`
	PlayersNeeded string `json:"playersNeeded"`
	MinPlayers    int    `json:"-"`
}

var gameCatalog = []GameInfo{
	{ID: GameTicTacToe, Name: "Tic Tac Toe", PlayersNeeded: "2 players", MinPlayers: 2},
	{ID: GameWordWall, Name: "Word Wall", PlayersNeeded: "2 players", MinPlayers: 2},
	{ID: GameCodenames, Name: "Codenames", PlayersNeeded: "4+ players", MinPlayers: 4},
	{ID: GameUno, Name: "Uno", PlayersNeeded: "2-8 players", MinPlayers: 2},
}

func knownGame(id GameID) bool {
	for _, g := range gameCatalog {
		if g.ID == id {
			return true
		}
	}
	return false
}

func minPlayers(id GameID) int {
	for _, g := range gameCatalog {
		if g.ID == id {
			return g.MinPlayers
		}
	}
	return 2
}

type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseTTT            Phase = "ttt"
	PhaseWord           Phase = "word"
	PhaseCodenamesSetup Phase = "codenames-setup"
	PhaseCodenamesPlay  Phase = "codenames-play"
	PhaseUno            Phase = "uno"
)

// Player is the identity every phase shares. Game phases decorate it
// with their own fields (mark, team/role, hand) in wrapper structs.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomState is the sealed union of per-phase room shapes. Only the
// structs in this package implement it.
type RoomState interface {
	roomState()
}

type LobbyState struct {
	Phase   Phase             `json:"phase"`
	Code    string            `json:"code"`
	Players []Player          `json:"players"`
	Votes   map[string]GameID `json:"votes"`
}

type TTTState struct {
	Phase   Phase       `json:"phase"`
	Code    string      `json:"code"`
	Players []TTTPlayer `json:"players"`
	Board   [9]Mark     `json:"board"`
	Turn    Mark        `json:"turn"`
	Winner  string      `json:"winner,omitempty"` // "X", "O" or "draw"
}

type WordState struct {
	Phase       Phase             `json:"phase"`
	Code        string            `json:"code"`
	Players     []Player          `json:"players"`
	Prompt      string            `json:"prompt"`
	Submissions map[string]string `json:"submissions"`
}

type CodenamesSetupState struct {
	Phase        Phase        `json:"phase"`
	Code         string       `json:"code"`
	Players      []CodePlayer `json:"players"`
	StartingTeam Team         `json:"startingTeam"`
}

type CodenamesPlayState struct {
	Phase     Phase        `json:"phase"`
	Code      string       `json:"code"`
	Players   []CodePlayer `json:"players"`
	Cards     []CodeCard   `json:"cards"`
	Turn      Team         `json:"turn"`
	Remaining TeamCounts   `json:"remaining"`
	Winner    Team         `json:"winner,omitempty"`
}

type UnoState struct {
	Phase        Phase       `json:"phase"`
	Code         string      `json:"code"`
	Players      []UnoPlayer `json:"players"`
	DrawPile     []UnoCard   `json:"drawPile"`
	DiscardPile  []UnoCard   `json:"discardPile"`
	CurrentColor UnoColor    `json:"currentColor"`
	TurnIndex    int         `json:"turnIndex"`
	Direction    int         `json:"direction"` // +1 or -1
	Winner       string      `json:"winner,omitempty"`
}

func (*LobbyState) roomState()          {}
func (*TTTState) roomState()            {}
func (*WordState) roomState()           {}
func (*CodenamesSetupState) roomState() {}
func (*CodenamesPlayState) roomState()  {}
func (*UnoState) roomState()            {}

// NewLobby is the state every room starts in.
func NewLobby(code string) *LobbyState {
	return &LobbyState{
		Phase:   PhaseLobby,
		Code:    code,
		Players: []Player{},
		Votes:   map[string]GameID{},
	}
}

// Action is a client-submitted intent. One struct covers every message
// type; unused fields stay at their zero value. Index is a pointer so
// cell 0 is distinguishable from an absent index.
type Action struct {
	Type        string   `json:"type"`
	PlayerID    string   `json:"playerId,omitempty"`
	Name        string   `json:"name,omitempty"`
	GameID      GameID   `json:"gameId,omitempty"`
	Index       *int     `json:"index,omitempty"`
	Text        string   `json:"text,omitempty"`
	CardID      string   `json:"cardId,omitempty"`
	ChosenColor UnoColor `json:"chosenColor,omitempty"`
	TargetID    string   `json:"targetId,omitempty"`
	Team        Team     `json:"team,omitempty"`
	Role        Role     `json:"role,omitempty"`
}

// Action types accepted by Apply. The host.* types are applied like any
// other action here; whether the sender is allowed to issue them is a
// transport concern.
const (
	ActionJoin      = "player.join"
	ActionVote      = "player.vote"
	ActionMove      = "player.move"
	ActionSubmit    = "player.submit"
	ActionUnoPlay   = "player.uno.play"
	ActionUnoDraw   = "player.uno.draw"
	ActionReveal    = "player.reveal"
	ActionEndTurn   = "player.endTurn"
	ActionStart     = "host.start"
	ActionLobby     = "host.lobby"
	ActionAgain     = "host.again"
	ActionCodeTeam  = "host.codenames.team"
	ActionCodeRole  = "host.codenames.role"
	ActionCodeStart = "host.codenames.start"
)

// Apply validates a against the current phase and returns the next
// state, or state itself when the action is illegal. Randomness
// (shuffles, prompt picks) comes from rng so outcomes are reproducible
// under test.
func Apply(state RoomState, a Action, rng *rand.Rand) RoomState {
	if state == nil {
		return state
	}

	switch a.Type {
	case ActionJoin:
		return applyJoin(state, a)
	case ActionVote:
		return applyVote(state, a)
	case ActionStart:
		return applyStart(state, rng)
	case ActionLobby:
		return applyBackToLobby(state)
	case ActionAgain:
		return applyPlayAgain(state, rng)
	case ActionCodeTeam:
		return applyCodenamesTeam(state, a)
	case ActionCodeRole:
		return applyCodenamesRole(state, a)
	case ActionCodeStart:
		return applyCodenamesStart(state, rng)
	case ActionMove:
		return applyMove(state, a)
	case ActionSubmit:
		return applySubmit(state, a)
	case ActionUnoPlay:
		return applyUnoPlay(state, a, rng)
	case ActionUnoDraw:
		return applyUnoDraw(state, a, rng)
	case ActionReveal:
		return applyReveal(state, a)
	case ActionEndTurn:
		return applyEndTurn(state, a)
	default:
		return state
	}
}

func applyJoin(state RoomState, a Action) RoomState {
	l, ok := state.(*LobbyState)
	if !ok {
		return state
	}

	name := strings.TrimSpace(a.Name)
	if a.PlayerID == "" || name == "" {
		return state
	}

	for _, p := range l.Players {
		if p.ID == a.PlayerID {
			return state
		}
	}

	next := *l
	next.Players = append(append([]Player{}, l.Players...), Player{ID: a.PlayerID, Name: name})
	return &next
}

func applyVote(state RoomState, a Action) RoomState {
	l, ok := state.(*LobbyState)
	if !ok {
		return state
	}

	if a.PlayerID == "" || !knownGame(a.GameID) {
		return state
	}

	known := false
	for _, p := range l.Players {
		if p.ID == a.PlayerID {
			known = true
			break
		}
	}
	if !known {
		return state
	}

	next := *l
	next.Votes = make(map[string]GameID, len(l.Votes)+1)
	for id, g := range l.Votes {
		next.Votes[id] = g
	}
	next.Votes[a.PlayerID] = a.GameID
	return &next
}

// winningVote tallies one vote per player and breaks ties by gameOrder.
// With no votes at all, the first enumerated game wins.
func winningVote(votes map[string]GameID) GameID {
	counts := make(map[GameID]int, len(gameOrder))
	for _, g := range votes {
		counts[g]++
	}

	best := gameOrder[0]
	bestCount := -1
	for _, g := range gameOrder {
		if counts[g] > bestCount {
			best = g
			bestCount = counts[g]
		}
	}
	return best
}

func applyStart(state RoomState, rng *rand.Rand) RoomState {
	l, ok := state.(*LobbyState)
	if !ok {
		return state
	}

	game := winningVote(l.Votes)
	if len(l.Players) < minPlayers(game) {
		return state
	}

	switch game {
	case GameTicTacToe:
		return setupTicTacToe(l.Code, l.Players)
	case GameWordWall:
		return setupWordWall(l.Code, l.Players, rng)
	case GameCodenames:
		return setupCodenames(l.Code, l.Players, rng)
	case GameUno:
		return setupUno(l.Code, l.Players, rng)
	default:
		return state
	}
}

// basePlayers strips phase decorations back down to id and name.
func basePlayers(state RoomState) []Player {
	switch s := state.(type) {
	case *LobbyState:
		return append([]Player{}, s.Players...)
	case *TTTState:
		out := make([]Player, 0, len(s.Players))
		for _, p := range s.Players {
			out = append(out, p.Player)
		}
		return out
	case *WordState:
		return append([]Player{}, s.Players...)
	case *CodenamesSetupState:
		out := make([]Player, 0, len(s.Players))
		for _, p := range s.Players {
			out = append(out, p.Player)
		}
		return out
	case *CodenamesPlayState:
		out := make([]Player, 0, len(s.Players))
		for _, p := range s.Players {
			out = append(out, p.Player)
		}
		return out
	case *UnoState:
		out := make([]Player, 0, len(s.Players))
		for _, p := range s.Players {
			out = append(out, p.Player)
		}
		return out
	default:
		return nil
	}
}

func roomCode(state RoomState) string {
	switch s := state.(type) {
	case *LobbyState:
		return s.Code
	case *TTTState:
		return s.Code
	case *WordState:
		return s.Code
	case *CodenamesSetupState:
		return s.Code
	case *CodenamesPlayState:
		return s.Code
	case *UnoState:
		return s.Code
	default:
		return ""
	}
}

// applyBackToLobby collapses any game phase back to a fresh lobby,
// keeping player identities and names and clearing votes.
func applyBackToLobby(state RoomState) RoomState {
	if _, ok := state.(*LobbyState); ok {
		return state
	}

	lobby := NewLobby(roomCode(state))
	lobby.Players = basePlayers(state)
	return lobby
}

// applyPlayAgain restarts the current game with the same players: a new
// board, prompt, codenames grid or deck. From the lobby or codenames
// setup it is a no-op.
func applyPlayAgain(state RoomState, rng *rand.Rand) RoomState {
	switch s := state.(type) {
	case *TTTState:
		if len(s.Players) < 2 {
			return applyBackToLobby(state)
		}
		next := *s
		next.Board = [9]Mark{}
		next.Turn = MarkX
		next.Winner = ""
		return &next
	case *WordState:
		next := *s
		next.Prompt = pickPrompt(rng)
		next.Submissions = map[string]string{}
		return &next
	case *CodenamesPlayState:
		return startCodenamesPlay(s.Code, s.Players, rng)
	case *UnoState:
		return setupUno(s.Code, basePlayers(s), rng)
	default:
		return state
	}
}
