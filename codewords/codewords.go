// Package codewords holds the domain types shared by every layer of the
// game server: the Game aggregate, its cards and players, and the Store
// contract that persistence implementations satisfy.
package codewords

import (
	"strconv"
	"strings"
	"time"
)

const (
	// Rows is the number of rows of cards on a board.
	Rows = 5
	// Columns is the number of columns of cards on a board.
	Columns = 5
	// BoardSize is the total number of cards on a board.
	BoardSize = Rows * Columns
)

type GameID string
type UserID string

// Team is a player or turn affiliation.
type Team string

const (
	// NoTeam means the player hasn't been assigned to a team yet.
	NoTeam   = Team("")
	RedTeam  = Team("RED")
	BlueTeam = Team("BLUE")
)

// Other returns the opposing team. The zero Team has no opponent and
// returns itself.
func (t Team) Other() Team {
	switch t {
	case RedTeam:
		return BlueTeam
	case BlueTeam:
		return RedTeam
	}
	return NoTeam
}

// Agent returns the card affiliation corresponding to this team.
func (t Team) Agent() Agent {
	switch t {
	case RedTeam:
		return RedAgent
	case BlueTeam:
		return BlueAgent
	}
	return Bystander
}

func (t Team) String() string {
	switch t {
	case RedTeam:
		return "Red Team"
	case BlueTeam:
		return "Blue Team"
	}
	return "No Team"
}

// Agent is the hidden affiliation of a card.
type Agent string

const (
	// RedAgent means the card belongs to the red team.
	RedAgent = Agent("RED")
	// BlueAgent means the card belongs to the blue team.
	BlueAgent = Agent("BLUE")
	// Bystander means the card belongs to neither team.
	Bystander = Agent("BYSTANDER")
	// Assassin means revealing the card immediately loses the game for
	// the team that revealed it.
	Assassin = Agent("ASSASSIN")
)

// Team returns the team a card of this affiliation belongs to, or NoTeam
// for bystanders and the assassin.
func (a Agent) Team() Team {
	switch a {
	case RedAgent:
		return RedTeam
	case BlueAgent:
		return BlueTeam
	}
	return NoTeam
}

// GameStatus is where a game is in its lifecycle.
type GameStatus string

const (
	// Created means the game has a board but not enough players to start.
	Created = GameStatus("CREATED")
	// Ready means the game has enough players and may be started.
	Ready = GameStatus("READY")
	// Started means the game is in progress.
	Started = GameStatus("STARTED")
	// Completed means the game has a winner. Nothing mutates a completed
	// game.
	Completed = GameStatus("COMPLETED")
)

// User is an account, independent of any particular game.
type User struct {
	ID UserID `json:"id"`
	// Name is the name that gets displayed.
	Name string `json:"name"`
}

func (u *User) Clone() *User {
	uc := *u
	return &uc
}

// Player is a user's membership in one game.
type Player struct {
	UserID UserID `json:"user_id"`
	Name   string `json:"name"`
	Team   Team   `json:"team"`
	// Spymaster is true for exactly one player per team once teams have
	// been assigned.
	Spymaster bool `json:"spymaster"`
}

func (p *Player) Clone() *Player {
	pc := *p
	return &pc
}

// Card is a single word on the board and its hidden affiliation.
type Card struct {
	Value string `json:"value"`
	Agent Agent  `json:"agent"`
	// Selected is set when a guess reveals the card. It never reverts.
	Selected bool `json:"selected"`
}

func (c *Card) Clone() *Card {
	cc := *c
	return &cc
}

// Clue is a word and a count from a spymaster.
type Clue struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func (c *Clue) Clone() *Clue {
	cc := *c
	return &cc
}

// ParseClue parses a clue of the form "word count", e.g. "muffins 3".
func ParseClue(clue string) (*Clue, error) {
	ps := strings.Split(strings.TrimSpace(clue), " ")
	if len(ps) != 2 {
		return nil, ErrMalformedClue
	}
	n, err := strconv.Atoi(ps[1])
	if err != nil {
		return nil, ErrMalformedClue
	}
	return &Clue{Word: ps[0], Count: n}, nil
}

// Game is the aggregate root. Engine operations mutate a Game in place
// under the exclusive access the Store guarantees per ID.
type Game struct {
	ID        GameID     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Status    GameStatus `json:"status"`
	// Players is in join order.
	Players []*Player `json:"players"`
	// Cards is keyed by the card's value.
	Cards map[string]*Card `json:"cards"`
	// Turn is the team currently entitled to guess.
	Turn Team `json:"turn"`
	// Winner is set exactly once, when Status becomes Completed.
	Winner Team `json:"winner,omitempty"`
	// Prompt is the active clue, nil until a spymaster posts one and
	// cleared when the turn passes.
	Prompt *Clue `json:"prompt,omitempty"`

	GuessesRemaining   int `json:"guesses_remaining"`
	RedCardsRemaining  int `json:"red_cards_remaining"`
	BlueCardsRemaining int `json:"blue_cards_remaining"`
}

// Player returns the game's player for the given user, if they joined.
func (g *Game) Player(uID UserID) (*Player, bool) {
	for _, p := range g.Players {
		if p.UserID == uID {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) Clone() *Game {
	gc := *g
	gc.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		gc.Players[i] = p.Clone()
	}
	gc.Cards = make(map[string]*Card, len(g.Cards))
	for v, c := range g.Cards {
		gc.Cards[v] = c.Clone()
	}
	if g.Prompt != nil {
		gc.Prompt = g.Prompt.Clone()
	}
	return &gc
}
