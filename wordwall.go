/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Word wall rules: one shared prompt, one short answer per player.

package main

import (
	"math/rand/v2"
	"strings"
)

var wordWallPrompts = []string{
	"Write one word that describes your day.",
	"Write one word a villain would put on a welcome mat.",
	"Write one word you'd never want to hear a doctor say.",
	"Write one word that belongs in a space adventure.",
	"Write one word that sounds like a dance move.",
	"Write one word your pet is secretly thinking.",
}

func pickPrompt(rng *rand.Rand) string {
	return wordWallPrompts[rng.IntN(len(wordWallPrompts))]
}

func setupWordWall(code string, players []Player, rng *rand.Rand) *WordState {
	return &WordState{
		Phase:       PhaseWord,
		Code:        code,
		Players:     append([]Player{}, players...),
		Prompt:      pickPrompt(rng),
		Submissions: map[string]string{},
	}
}

// applySubmit records or overwrites a player's answer.
func applySubmit(state RoomState, a Action) RoomState {
	s, ok := state.(*WordState)
	if !ok {
		return state
	}

	text := strings.TrimSpace(a.Text)
	if a.PlayerID == "" || text == "" {
		return state
	}

	known := false
	for _, p := range s.Players {
		if p.ID == a.PlayerID {
			known = true
			break
		}
	}
	if !known {
		return state
	}

	next := *s
	next.Submissions = make(map[string]string, len(s.Submissions)+1)
	for id, t := range s.Submissions {
		next.Submissions[id] = t
	}
	next.Submissions[a.PlayerID] = text
	return &next
}
