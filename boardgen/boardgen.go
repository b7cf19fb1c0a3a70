// Package boardgen builds a fresh board from a pool of candidate words.
package boardgen

import (
	"math/rand"

	"github.com/tbrandon/codewords/codewords"
)

const (
	baseTeamCards = 8
	assassinCards = 1
)

// Board is the output of one generation run: the 25 cards keyed by word,
// which team guesses first, and how many cards each team has to find.
// The starting team always holds the extra ninth card.
type Board struct {
	Cards        map[string]*codewords.Card
	StartingTeam codewords.Team
	RedCards     int
	BlueCards    int
}

// New draws 25 distinct words from pool without replacement and deals
// out affiliations: 9 for the starting team, 8 for the other, 1
// assassin, and the remaining 7 stay bystanders. The coin flip for the
// ninth card decides the starting team. Fails with ErrInsufficientPool
// if the pool holds fewer than 25 distinct words.
func New(pool []string, r *rand.Rand) (*Board, error) {
	remaining := dedupe(pool)
	if len(remaining) < codewords.BoardSize {
		return nil, codewords.ErrInsufficientPool
	}

	cards := make(map[string]*codewords.Card, codewords.BoardSize)
	// Every card starts as a bystander and is promoted at most once
	// below. eligible tracks the words still promotable, so each draw is
	// uniform over exactly the bystanders and the deal can't stall.
	eligible := make([]string, 0, codewords.BoardSize)
	for i := 0; i < codewords.BoardSize; i++ {
		idx := r.Intn(len(remaining))
		word := remaining[idx]
		remaining[idx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		cards[word] = &codewords.Card{Value: word, Agent: codewords.Bystander}
		eligible = append(eligible, word)
	}

	redCards, blueCards := baseTeamCards, baseTeamCards
	if r.Intn(2) == 1 {
		redCards++
	} else {
		blueCards++
	}

	promote := func(agent codewords.Agent, n int) {
		for ; n > 0; n-- {
			idx := r.Intn(len(eligible))
			cards[eligible[idx]].Agent = agent
			eligible[idx] = eligible[len(eligible)-1]
			eligible = eligible[:len(eligible)-1]
		}
	}
	promote(codewords.RedAgent, redCards)
	promote(codewords.BlueAgent, blueCards)
	promote(codewords.Assassin, assassinCards)

	starter := codewords.RedTeam
	if blueCards > redCards {
		starter = codewords.BlueTeam
	}

	return &Board{
		Cards:        cards,
		StartingTeam: starter,
		RedCards:     redCards,
		BlueCards:    blueCards,
	}, nil
}

func dedupe(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
