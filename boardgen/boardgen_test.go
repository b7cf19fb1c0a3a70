package boardgen

import (
	"math/rand"
	"testing"

	"github.com/tbrandon/codewords/codewords"
	"github.com/tbrandon/codewords/wordlist"
)

func TestNew(t *testing.T) {
	pool := wordlist.Default()

	// The deal is random, so run it across a bunch of seeds and check the
	// properties that must hold for every board.
	for seed := int64(0); seed < 50; seed++ {
		b, err := New(pool, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New(seed %d): %v", seed, err)
		}

		if len(b.Cards) != codewords.BoardSize {
			t.Fatalf("seed %d: got %d cards, want %d", seed, len(b.Cards), codewords.BoardSize)
		}

		counts := make(map[codewords.Agent]int)
		for word, c := range b.Cards {
			if c.Value != word {
				t.Errorf("seed %d: card keyed %q has value %q", seed, word, c.Value)
			}
			if c.Selected {
				t.Errorf("seed %d: card %q starts revealed", seed, word)
			}
			counts[c.Agent]++
		}

		want := map[codewords.Agent]int{
			codewords.RedAgent:  8,
			codewords.BlueAgent: 8,
			codewords.Bystander: 7,
			codewords.Assassin:  1,
		}
		want[b.StartingTeam.Agent()]++
		for agent, wc := range want {
			if counts[agent] != wc {
				t.Errorf("seed %d: got %d %s cards, want %d", seed, counts[agent], agent, wc)
			}
		}

		if b.RedCards != counts[codewords.RedAgent] {
			t.Errorf("seed %d: RedCards = %d, board has %d", seed, b.RedCards, counts[codewords.RedAgent])
		}
		if b.BlueCards != counts[codewords.BlueAgent] {
			t.Errorf("seed %d: BlueCards = %d, board has %d", seed, b.BlueCards, counts[codewords.BlueAgent])
		}
	}
}

func TestNew_StartingTeamHasNineCards(t *testing.T) {
	pool := wordlist.Default()

	var sawRed, sawBlue bool
	for seed := int64(0); seed < 50; seed++ {
		b, err := New(pool, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New(seed %d): %v", seed, err)
		}

		switch b.StartingTeam {
		case codewords.RedTeam:
			sawRed = true
			if b.RedCards != 9 || b.BlueCards != 8 {
				t.Errorf("seed %d: red starts with %d/%d cards, want 9/8", seed, b.RedCards, b.BlueCards)
			}
		case codewords.BlueTeam:
			sawBlue = true
			if b.BlueCards != 9 || b.RedCards != 8 {
				t.Errorf("seed %d: blue starts with %d/%d cards, want 9/8", seed, b.BlueCards, b.RedCards)
			}
		default:
			t.Errorf("seed %d: no starting team", seed)
		}
	}

	if !sawRed || !sawBlue {
		t.Errorf("50 seeds never flipped both ways: red=%t blue=%t", sawRed, sawBlue)
	}
}

func TestNew_ExactPoolUsesEveryWord(t *testing.T) {
	pool := wordlist.Default()[:codewords.BoardSize]

	b, err := New(pool, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, w := range pool {
		if _, ok := b.Cards[w]; !ok {
			t.Errorf("pool word %q missing from board", w)
		}
	}
}

func TestNew_InsufficientPool(t *testing.T) {
	tests := []struct {
		desc string
		pool []string
	}{
		{desc: "empty pool", pool: nil},
		{desc: "24 words", pool: wordlist.Default()[:24]},
		{desc: "25 entries with a duplicate", pool: append(wordlist.Default()[:24:24], wordlist.Default()[0])},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := New(test.pool, rand.New(rand.NewSource(0)))
			if err != codewords.ErrInsufficientPool {
				t.Errorf("New = %v, want ErrInsufficientPool", err)
			}
		})
	}
}
