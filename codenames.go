/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Codenames rules. The game runs in two phases: a setup phase where the
// host sorts players into teams and picks spymasters, then the play
// phase over a 5x5 word grid. The starting team gets 9 cards, the other
// 8, plus 7 neutrals and the assassin.

package main

import "math/rand/v2"

type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

func opposing(t Team) Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

type Role string

const (
	RoleSpymaster Role = "spymaster"
	RoleGuesser   Role = "guesser"
)

type CardColor string

const (
	ColorRed      CardColor = "red"
	ColorBlue     CardColor = "blue"
	ColorNeutral  CardColor = "neutral"
	ColorAssassin CardColor = "assassin"
)

type CodeCard struct {
	Word     string    `json:"word"`
	Color    CardColor `json:"color"`
	Revealed bool      `json:"revealed"`
}

type CodePlayer struct {
	Player
	Team Team `json:"team,omitempty"` // empty until assigned in setup
	Role Role `json:"role"`
}

type TeamCounts struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

func (c TeamCounts) forTeam(t Team) int {
	if t == TeamRed {
		return c.Red
	}
	return c.Blue
}

var codenamesWords = []string{
	"Apple", "Bridge", "Glass", "Tiger", "Piano", "Jupiter", "Doctor",
	"Knight", "Forest", "Rocket", "Castle", "Circle", "Lightning",
	"Diamond", "Shadow", "Orange", "Camera", "Library", "Bottle",
	"Garden", "Pirate", "Planet", "Dragon", "Robot", "Anchor", "River",
	"Tablet", "Spiral", "Cactus", "Mirror", "Museum", "Engine", "Market",
	"Thunder", "Battery", "Helmet", "Needle", "Sailor", "Signal",
	"Turkey", "Canyon", "Falcon", "Bubble", "Comet", "Crown", "Feather",
	"Galaxy", "Harbor", "Jungle", "Lantern", "Magnet", "Marble",
	"Sphinx", "Temple", "Tunnel", "Velvet", "Whisper", "Winter",
	"Zombie", "Tornado", "Volcano", "Sapphire", "Quartz", "Viking",
	"Whale", "Wizard", "Saturn", "Orbit", "Coral", "Lemon", "Alps",
	"Atlas", "Beacon", "Blizzard", "Cobra", "Desert", "Eagle", "Fossil",
	"Giant", "Harpoon", "Icicle", "Lagoon", "Lighthouse", "Meteor",
	"Oasis", "Palace", "Ranger", "Rhythm", "Sahara", "Tanker", "Voyage",
	"Warden",
}

// generateBoard builds a fresh 25-card grid and picks the starting
// team, which receives the extra ninth card.
func generateBoard(rng *rand.Rand) ([]CodeCard, Team) {
	starting := TeamRed
	if rng.IntN(2) == 1 {
		starting = TeamBlue
	}

	colors := make([]CardColor, 0, 25)
	for i := 0; i < 9; i++ {
		colors = append(colors, CardColor(starting))
	}
	for i := 0; i < 8; i++ {
		colors = append(colors, CardColor(opposing(starting)))
	}
	for i := 0; i < 7; i++ {
		colors = append(colors, ColorNeutral)
	}
	colors = append(colors, ColorAssassin)
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	perm := rng.Perm(len(codenamesWords))
	cards := make([]CodeCard, 25)
	for i := range cards {
		cards[i] = CodeCard{
			Word:  codenamesWords[perm[i]],
			Color: colors[i],
		}
	}
	return cards, starting
}

func setupCodenames(code string, players []Player, rng *rand.Rand) *CodenamesSetupState {
	starting := TeamRed
	if rng.IntN(2) == 1 {
		starting = TeamBlue
	}

	seated := make([]CodePlayer, 0, len(players))
	for _, p := range players {
		seated = append(seated, CodePlayer{Player: p, Role: RoleGuesser})
	}

	return &CodenamesSetupState{
		Phase:        PhaseCodenamesSetup,
		Code:         code,
		Players:      seated,
		StartingTeam: starting,
	}
}

// codenamesReady reports whether the setup phase can advance: at least
// four players, both teams occupied, and a spymaster on each.
func codenamesReady(players []CodePlayer) bool {
	if len(players) < 4 {
		return false
	}

	var redCount, blueCount int
	var redSpy, blueSpy bool
	for _, p := range players {
		switch p.Team {
		case TeamRed:
			redCount++
			redSpy = redSpy || p.Role == RoleSpymaster
		case TeamBlue:
			blueCount++
			blueSpy = blueSpy || p.Role == RoleSpymaster
		}
	}
	return redCount > 0 && blueCount > 0 && redSpy && blueSpy
}

func startCodenamesPlay(code string, players []CodePlayer, rng *rand.Rand) *CodenamesPlayState {
	cards, starting := generateBoard(rng)

	remaining := TeamCounts{Red: 8, Blue: 8}
	if starting == TeamRed {
		remaining.Red = 9
	} else {
		remaining.Blue = 9
	}

	return &CodenamesPlayState{
		Phase:     PhaseCodenamesPlay,
		Code:      code,
		Players:   append([]CodePlayer{}, players...),
		Cards:     cards,
		Turn:      starting,
		Remaining: remaining,
	}
}

func applyCodenamesTeam(state RoomState, a Action) RoomState {
	s, ok := state.(*CodenamesSetupState)
	if !ok {
		return state
	}
	if a.TargetID == "" || (a.Team != TeamRed && a.Team != TeamBlue) {
		return state
	}

	for i, p := range s.Players {
		if p.ID == a.TargetID {
			next := *s
			next.Players = append([]CodePlayer{}, s.Players...)
			next.Players[i].Team = a.Team
			return &next
		}
	}
	return state
}

func applyCodenamesRole(state RoomState, a Action) RoomState {
	s, ok := state.(*CodenamesSetupState)
	if !ok {
		return state
	}
	if a.TargetID == "" || (a.Role != RoleSpymaster && a.Role != RoleGuesser) {
		return state
	}

	for i, p := range s.Players {
		if p.ID == a.TargetID {
			next := *s
			next.Players = append([]CodePlayer{}, s.Players...)
			next.Players[i].Role = a.Role
			return &next
		}
	}
	return state
}

func applyCodenamesStart(state RoomState, rng *rand.Rand) RoomState {
	s, ok := state.(*CodenamesSetupState)
	if !ok {
		return state
	}
	if !codenamesReady(s.Players) {
		return state
	}
	return startCodenamesPlay(s.Code, s.Players, rng)
}

// applyReveal flips one card for a guesser on the team to move.
//
// The assassin ends the game at once for the opposing team, with the
// counts untouched. A team-colored card always decrements that team's
// remaining count, whichever team revealed it, and reaching zero wins
// for the card's team; revealing neutral or the other team's color also
// ends the revealing team's turn.
func applyReveal(state RoomState, a Action) RoomState {
	s, ok := state.(*CodenamesPlayState)
	if !ok {
		return state
	}

	if s.Winner != "" || a.Index == nil {
		return state
	}
	idx := *a.Index
	if idx < 0 || idx >= len(s.Cards) || s.Cards[idx].Revealed {
		return state
	}

	var guesser *CodePlayer
	for i := range s.Players {
		if s.Players[i].ID == a.PlayerID {
			guesser = &s.Players[i]
			break
		}
	}
	if guesser == nil || guesser.Role != RoleGuesser || guesser.Team != s.Turn {
		return state
	}

	next := *s
	next.Cards = append([]CodeCard{}, s.Cards...)
	next.Cards[idx].Revealed = true

	switch card := s.Cards[idx]; card.Color {
	case ColorAssassin:
		next.Winner = opposing(s.Turn)
	case ColorRed, ColorBlue:
		cardTeam := Team(card.Color)
		if cardTeam == TeamRed {
			next.Remaining.Red--
		} else {
			next.Remaining.Blue--
		}
		if next.Remaining.forTeam(cardTeam) <= 0 {
			next.Winner = cardTeam
		} else if cardTeam != s.Turn {
			next.Turn = opposing(s.Turn)
		}
	default:
		next.Turn = opposing(s.Turn)
	}
	return &next
}

// applyEndTurn lets any player on the team to move pass the turn.
func applyEndTurn(state RoomState, a Action) RoomState {
	s, ok := state.(*CodenamesPlayState)
	if !ok {
		return state
	}
	if s.Winner != "" {
		return state
	}

	for _, p := range s.Players {
		if p.ID == a.PlayerID {
			if p.Team != s.Turn {
				return state
			}
			next := *s
			next.Turn = opposing(s.Turn)
			return &next
		}
	}
	return state
}
