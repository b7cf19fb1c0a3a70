package codewords

import (
	"math/rand"

	"github.com/google/uuid"
)

// gameIDLen is short enough to share out loud and long enough to make
// collisions and guessing unlikely. Game IDs double as the access token
// for a game, so the *rand.Rand passed in should be backed by a secure
// source in production.
const gameIDLen = 6

var gameIDLetters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// RandomGameID returns a short random alphabetic game identifier.
func RandomGameID(r *rand.Rand) GameID {
	b := make([]byte, gameIDLen)
	for i := range b {
		b[i] = gameIDLetters[r.Intn(len(gameIDLetters))]
	}
	return GameID(b)
}

// NewUserID returns a fresh user identifier.
func NewUserID() UserID {
	return UserID(uuid.NewString())
}
