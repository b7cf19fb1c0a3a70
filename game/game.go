// Package game is the engine: it creates games, gates lifecycle
// transitions, splits the roster into teams, and resolves guesses. Every
// operation is a synchronous mutation of one Game aggregate; callers
// hold exclusive access to the aggregate for the duration of a call (the
// Store serializes per game ID).
package game

import (
	"math/rand"
	"time"

	"github.com/tbrandon/codewords/boardgen"
	"github.com/tbrandon/codewords/codewords"
)

// MinPlayers is the roster size at which a game becomes Ready. Two is
// the floor for two non-empty teams, each with a spymaster.
const MinPlayers = 2

// New creates a game in the Created state with a freshly generated
// board. The turn is pre-assigned to whichever team drew nine cards.
func New(id codewords.GameID, createdAt time.Time, pool []string, r *rand.Rand) (*codewords.Game, error) {
	b, err := boardgen.New(pool, r)
	if err != nil {
		return nil, err
	}

	return &codewords.Game{
		ID:                 id,
		CreatedAt:          createdAt,
		Status:             codewords.Created,
		Players:            []*codewords.Player{},
		Cards:              b.Cards,
		Turn:               b.StartingTeam,
		RedCardsRemaining:  b.RedCards,
		BlueCardsRemaining: b.BlueCards,
	}, nil
}

// AddPlayer adds a user to the game's roster. Joining is only legal
// before the game starts, and reaching MinPlayers moves the game from
// Created to Ready.
func AddPlayer(g *codewords.Game, u *codewords.User) error {
	if g.Status != codewords.Created && g.Status != codewords.Ready {
		return codewords.ErrGameStarted
	}
	if _, ok := g.Player(u.ID); ok {
		return codewords.ErrAlreadyJoined
	}

	g.Players = append(g.Players, &codewords.Player{
		UserID: u.ID,
		Name:   u.Name,
		Team:   codewords.NoTeam,
	})
	if g.Status == codewords.Created && len(g.Players) >= MinPlayers {
		g.Status = codewords.Ready
	}
	return nil
}

// Start moves a Ready game to Started, dealing the roster into teams.
func Start(g *codewords.Game, r *rand.Rand) error {
	if g.Status != codewords.Ready {
		return codewords.ErrGameNotReady
	}
	if err := assignTeams(g.Players, r); err != nil {
		return err
	}
	g.Status = codewords.Started
	return nil
}

// assignTeams splits players into near-equal halves, blue taking the
// extra player on odd rosters, and picks one spymaster per team.
//
// Blue is filled first by drawing uniformly from the not-yet-assigned
// players; whoever is left is red. That's a uniform random partition of
// the right sizes, not a uniform shuffle of labelings, which is all the
// game needs.
func assignTeams(players []*codewords.Player, r *rand.Rand) error {
	n := len(players)
	redCount := n / 2
	blueCount := n - redCount
	if redCount == 0 || blueCount == 0 {
		return codewords.ErrEmptyTeam
	}

	unassigned := make([]*codewords.Player, n)
	copy(unassigned, players)

	var red, blue []*codewords.Player
	for len(blue) < blueCount {
		idx := r.Intn(len(unassigned))
		p := unassigned[idx]
		unassigned[idx] = unassigned[len(unassigned)-1]
		unassigned = unassigned[:len(unassigned)-1]

		p.Team = codewords.BlueTeam
		blue = append(blue, p)
	}
	for len(red) < redCount {
		idx := r.Intn(len(unassigned))
		p := unassigned[idx]
		unassigned[idx] = unassigned[len(unassigned)-1]
		unassigned = unassigned[:len(unassigned)-1]

		p.Team = codewords.RedTeam
		red = append(red, p)
	}

	red[r.Intn(len(red))].Spymaster = true
	blue[r.Intn(len(blue))].Spymaster = true
	return nil
}

// GiveClue posts a clue for the active team. Only the active team's
// spymaster may post, and only when no clue is already in play. The team
// gets the clue's count plus one guesses.
func GiveClue(g *codewords.Game, uID codewords.UserID, clue *codewords.Clue) error {
	if g.Status != codewords.Started {
		return codewords.ErrGameNotStarted
	}
	p, ok := g.Player(uID)
	if !ok {
		return codewords.ErrUserNotFound
	}
	if g.Turn != p.Team {
		return codewords.ErrNotYourTurn
	}
	if !p.Spymaster {
		return codewords.ErrNotSpymaster
	}
	if g.Prompt != nil {
		return codewords.ErrPromptActive
	}
	if clue.Count < 1 {
		return codewords.ErrMalformedClue
	}

	g.Prompt = clue.Clone()
	g.GuessesRemaining = clue.Count + 1
	return nil
}

// Guess reveals a card on behalf of the given user and resolves the
// consequences: team counters, win and loss conditions, and turn
// passing. All preconditions are checked before anything mutates.
//
// A revealed card always decrements the counter of the card's own
// color, whichever team revealed it. Guessing a card that belongs to
// the opposing team hands them progress, and revealing their last card
// completes the game in their favor.
func Guess(g *codewords.Game, word string, uID codewords.UserID) error {
	if g.Status != codewords.Started {
		return codewords.ErrGameNotStarted
	}
	p, ok := g.Player(uID)
	if !ok {
		return codewords.ErrUserNotFound
	}
	if g.Turn != p.Team {
		return codewords.ErrNotYourTurn
	}
	card, ok := g.Cards[word]
	if !ok {
		return codewords.ErrCardNotFound
	}
	if card.Selected {
		return codewords.ErrCardRevealed
	}

	card.Selected = true
	g.GuessesRemaining--

	switch card.Agent {
	case codewords.RedAgent:
		g.RedCardsRemaining--
		if g.RedCardsRemaining == 0 {
			complete(g, codewords.RedTeam)
		}
	case codewords.BlueAgent:
		g.BlueCardsRemaining--
		if g.BlueCardsRemaining == 0 {
			complete(g, codewords.BlueTeam)
		}
	case codewords.Assassin:
		complete(g, p.Team.Other())
	default:
		if g.GuessesRemaining == 0 {
			g.Turn = g.Turn.Other()
			g.Prompt = nil
		}
	}
	return nil
}

func complete(g *codewords.Game, winner codewords.Team) {
	g.Winner = winner
	g.Status = codewords.Completed
}
