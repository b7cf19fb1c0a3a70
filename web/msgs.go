package web

import "github.com/tbrandon/codewords/codewords"

// GameUpdate is pushed over the game's websocket after every successful
// mutation: joins, starts, clues, and guesses all carry the full updated
// snapshot. Action tells clients what kind of message arrived before
// they decode the rest.
type GameUpdate struct {
	Action string          `json:"action"`
	Game   *codewords.Game `json:"game"`
}

// NewGameUpdate wraps a game snapshot for broadcast.
func NewGameUpdate(g *codewords.Game) *GameUpdate {
	return &GameUpdate{Action: "GAME_UPDATED", Game: g}
}
