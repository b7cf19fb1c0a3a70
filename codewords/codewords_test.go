package codewords

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTeamOther(t *testing.T) {
	tests := []struct {
		team Team
		want Team
	}{
		{RedTeam, BlueTeam},
		{BlueTeam, RedTeam},
		// An unassigned team has no opponent.
		{NoTeam, NoTeam},
	}

	for _, test := range tests {
		if got := test.team.Other(); got != test.want {
			t.Errorf("%q.Other() = %q, want %q", test.team, got, test.want)
		}
	}
}

func TestAgentTeam(t *testing.T) {
	tests := []struct {
		agent Agent
		want  Team
	}{
		{RedAgent, RedTeam},
		{BlueAgent, BlueTeam},
		{Bystander, NoTeam},
		{Assassin, NoTeam},
	}

	for _, test := range tests {
		if got := test.agent.Team(); got != test.want {
			t.Errorf("%q.Team() = %q, want %q", test.agent, got, test.want)
		}
	}

	for _, team := range []Team{RedTeam, BlueTeam} {
		if got := team.Agent().Team(); got != team {
			t.Errorf("%q.Agent().Team() = %q, want it to round-trip", team, got)
		}
	}
}

func TestParseClue(t *testing.T) {
	got, err := ParseClue("muffins 3")
	if err != nil {
		t.Fatalf("ParseClue: %v", err)
	}
	want := &Clue{Word: "muffins", Count: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected clue (-want +got)\n%s", diff)
	}

	for _, bad := range []string{"", "muffins", "muffins three", "too many words 3"} {
		if _, err := ParseClue(bad); !errors.Is(err, ErrMalformedClue) {
			t.Errorf("ParseClue(%q) = %v, want ErrMalformedClue", bad, err)
		}
	}
}

func TestRandomGameID(t *testing.T) {
	r := rand.New(rand.NewSource(0))

	seen := make(map[GameID]struct{})
	for i := 0; i < 100; i++ {
		id := RandomGameID(r)
		if len(id) != 6 {
			t.Fatalf("RandomGameID length = %d, want 6", len(id))
		}
		for _, c := range id {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				t.Fatalf("RandomGameID %q contains non-alphabetic %q", id, c)
			}
		}
		seen[id] = struct{}{}
	}
	if len(seen) != 100 {
		t.Errorf("100 draws produced only %d distinct IDs", len(seen))
	}
}

func TestGameClone(t *testing.T) {
	g := &Game{
		ID:     "abcdef",
		Status: Started,
		Players: []*Player{
			{UserID: "u1", Name: "Ann", Team: RedTeam, Spymaster: true},
		},
		Cards: map[string]*Card{
			"apple": {Value: "apple", Agent: RedAgent},
		},
		Turn:              RedTeam,
		Prompt:            &Clue{Word: "fruit", Count: 1},
		GuessesRemaining:  2,
		RedCardsRemaining: 1,
	}

	gc := g.Clone()
	if diff := cmp.Diff(g, gc); diff != "" {
		t.Fatalf("clone differs from original (-want +got)\n%s", diff)
	}

	// The clone shares nothing with the original.
	gc.Cards["apple"].Selected = true
	gc.Players[0].Team = BlueTeam
	gc.Prompt.Word = "changed"

	if g.Cards["apple"].Selected {
		t.Error("mutating the clone's cards reached the original")
	}
	if g.Players[0].Team != RedTeam {
		t.Error("mutating the clone's players reached the original")
	}
	if g.Prompt.Word != "fruit" {
		t.Error("mutating the clone's prompt reached the original")
	}
}

func TestPlayerLookup(t *testing.T) {
	g := &Game{
		Players: []*Player{
			{UserID: "u1", Name: "Ann"},
			{UserID: "u2", Name: "Ben"},
		},
	}

	p, ok := g.Player("u2")
	if !ok || p.Name != "Ben" {
		t.Errorf("Player(u2) = %+v, %t", p, ok)
	}
	if _, ok := g.Player("u3"); ok {
		t.Error("Player(u3) found a player that never joined")
	}
}
