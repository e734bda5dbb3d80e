/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Uno rules. The deck is the standard 108 cards with deterministic ids,
// so the card multiset is checkable at any point. When the draw pile
// runs out it is rebuilt from a fresh deck minus every card currently
// held or discarded, which keeps the multiset intact.

package main

import (
	"fmt"
	"math/rand/v2"
)

type UnoColor string

const (
	UnoRed    UnoColor = "red"
	UnoYellow UnoColor = "yellow"
	UnoGreen  UnoColor = "green"
	UnoBlue   UnoColor = "blue"
	UnoWild   UnoColor = "wild"
)

var unoColors = []UnoColor{UnoRed, UnoYellow, UnoGreen, UnoBlue}

type UnoValue string

const (
	UnoSkip     UnoValue = "skip"
	UnoReverse  UnoValue = "reverse"
	UnoDraw2    UnoValue = "draw2"
	UnoWildCard UnoValue = "wild"
	UnoWild4    UnoValue = "wild4"
)

type UnoCard struct {
	ID    string   `json:"id"`
	Color UnoColor `json:"color"`
	Value UnoValue `json:"value"`
}

type UnoPlayer struct {
	Player
	Hand []UnoCard `json:"hand"`
}

const unoDeckSize = 108
const unoHandSize = 7

func unoCardID(color UnoColor, value UnoValue, idx int) string {
	return fmt.Sprintf("%s-%s-%d", color, value, idx)
}

// buildDeck constructs and shuffles the full 108-card deck: per color
// one zero, two of each 1-9/skip/reverse/draw2, plus four wilds and
// four wild-draw-fours.
func buildDeck(rng *rand.Rand) []UnoCard {
	cards := make([]UnoCard, 0, unoDeckSize)

	values := []UnoValue{
		"1", "2", "3", "4", "5", "6", "7", "8", "9",
		UnoSkip, UnoReverse, UnoDraw2,
	}
	for _, color := range unoColors {
		cards = append(cards, UnoCard{ID: unoCardID(color, "0", 0), Color: color, Value: "0"})
		for _, value := range values {
			cards = append(cards, UnoCard{ID: unoCardID(color, value, 1), Color: color, Value: value})
			cards = append(cards, UnoCard{ID: unoCardID(color, value, 2), Color: color, Value: value})
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, UnoCard{ID: unoCardID(UnoWild, UnoWildCard, i), Color: UnoWild, Value: UnoWildCard})
		cards = append(cards, UnoCard{ID: unoCardID(UnoWild, UnoWild4, i), Color: UnoWild, Value: UnoWild4})
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

func canPlay(card, top UnoCard, current UnoColor) bool {
	if card.Color == UnoWild {
		return true
	}
	if card.Color == current {
		return true
	}
	return card.Value == top.Value
}

// nextIndex advances the turn 1+skip seats in the given direction.
func nextIndex(current, count, direction, skip int) int {
	idx := current
	for i := 0; i < 1+skip; i++ {
		idx = ((idx+direction)%count + count) % count
	}
	return idx
}

// rebuildDrawPile reconstitutes an exhausted draw pile: a fresh deck is
// built, every card id currently in a hand or on the discard pile is
// removed, and the remainder becomes the new pile.
func rebuildDrawPile(players []UnoPlayer, discard []UnoCard, rng *rand.Rand) []UnoCard {
	inPlay := make(map[string]bool, unoDeckSize)
	for _, p := range players {
		for _, c := range p.Hand {
			inPlay[c.ID] = true
		}
	}
	for _, c := range discard {
		inPlay[c.ID] = true
	}

	deck := buildDeck(rng)
	pile := deck[:0]
	for _, c := range deck {
		if !inPlay[c.ID] {
			pile = append(pile, c)
		}
	}
	return pile
}

// setupUno deals seven cards to each player and flips the first
// non-wild card to open the discard pile.
func setupUno(code string, players []Player, rng *rand.Rand) *UnoState {
	deck := buildDeck(rng)

	dealt := make([]UnoPlayer, 0, len(players))
	for _, p := range players {
		hand := append([]UnoCard{}, deck[:unoHandSize]...)
		deck = deck[unoHandSize:]
		dealt = append(dealt, UnoPlayer{Player: p, Hand: hand})
	}

	var top UnoCard
	for i := 0; i < len(deck); i++ {
		top, deck = deck[0], deck[1:]
		if top.Color != UnoWild {
			break
		}
		deck = append(deck, top)
	}

	return &UnoState{
		Phase:        PhaseUno,
		Code:         code,
		Players:      dealt,
		DrawPile:     deck,
		DiscardPile:  []UnoCard{top},
		CurrentColor: top.Color,
		TurnIndex:    0,
		Direction:    1,
	}
}

func chosenColorValid(c UnoColor) bool {
	for _, color := range unoColors {
		if c == color {
			return true
		}
	}
	return false
}

// applyUnoPlay resolves a play action in order: remove the card from
// the hand, discard it, resolve color (wilds need an explicit choice),
// resolve reversal, compute the next seat applying any skip, deal any
// forced draw to that seat and advance past it, then set the winner
// from the acting player's emptied hand.
func applyUnoPlay(state RoomState, a Action, rng *rand.Rand) RoomState {
	s, ok := state.(*UnoState)
	if !ok {
		return state
	}

	if s.Winner != "" || a.CardID == "" {
		return state
	}

	playerIndex := -1
	for i := range s.Players {
		if s.Players[i].ID == a.PlayerID {
			playerIndex = i
			break
		}
	}
	if playerIndex != s.TurnIndex {
		return state
	}
	player := s.Players[playerIndex]

	var card UnoCard
	found := false
	for _, c := range player.Hand {
		if c.ID == a.CardID {
			card = c
			found = true
			break
		}
	}
	if !found {
		return state
	}

	top := s.DiscardPile[len(s.DiscardPile)-1]
	if !canPlay(card, top, s.CurrentColor) {
		return state
	}

	nextColor := card.Color
	if card.Color == UnoWild {
		if !chosenColorValid(a.ChosenColor) {
			return state
		}
		nextColor = a.ChosenColor
	}

	hand := make([]UnoCard, 0, len(player.Hand)-1)
	for _, c := range player.Hand {
		if c.ID != card.ID {
			hand = append(hand, c)
		}
	}

	next := *s
	next.Players = append([]UnoPlayer{}, s.Players...)
	next.Players[playerIndex].Hand = hand
	next.DiscardPile = append(append([]UnoCard{}, s.DiscardPile...), card)
	next.CurrentColor = nextColor

	skip := 0
	var drawCount int
	switch card.Value {
	case UnoReverse:
		next.Direction = -s.Direction
	case UnoSkip:
		skip = 1
	case UnoDraw2:
		drawCount = 2
	case UnoWild4:
		drawCount = 4
	}

	count := len(s.Players)
	target := nextIndex(s.TurnIndex, count, next.Direction, skip)

	if len(hand) == 0 {
		next.Winner = player.ID
	}

	if drawCount > 0 {
		pile := append([]UnoCard{}, s.DrawPile...)
		if len(pile) == 0 {
			pile = rebuildDrawPile(next.Players, next.DiscardPile, rng)
		}
		if drawCount > len(pile) {
			drawCount = len(pile)
		}
		drawn := pile[:drawCount]
		next.DrawPile = pile[drawCount:]
		next.Players[target].Hand = append(append([]UnoCard{}, next.Players[target].Hand...), drawn...)
		next.TurnIndex = nextIndex(target, count, next.Direction, 0)
		return &next
	}

	next.TurnIndex = target
	return &next
}

// applyUnoDraw draws one card for the player whose turn it is and
// passes the turn.
func applyUnoDraw(state RoomState, a Action, rng *rand.Rand) RoomState {
	s, ok := state.(*UnoState)
	if !ok {
		return state
	}

	if s.Winner != "" {
		return state
	}

	playerIndex := -1
	for i := range s.Players {
		if s.Players[i].ID == a.PlayerID {
			playerIndex = i
			break
		}
	}
	if playerIndex != s.TurnIndex {
		return state
	}

	pile := append([]UnoCard{}, s.DrawPile...)
	if len(pile) == 0 {
		pile = rebuildDrawPile(s.Players, s.DiscardPile, rng)
	}
	if len(pile) == 0 {
		return state
	}

	drawn := pile[0]

	next := *s
	next.DrawPile = pile[1:]
	next.Players = append([]UnoPlayer{}, s.Players...)
	next.Players[playerIndex].Hand = append(append([]UnoCard{}, s.Players[playerIndex].Hand...), drawn)
	next.TurnIndex = nextIndex(s.TurnIndex, len(s.Players), s.Direction, 0)
	return &next
}
