// Package memdb is the in-memory Store. A single RWMutex serializes all
// access, which more than covers the per-game-ID atomicity the engine
// requires. Games are cloned on the way in and out so callers can't
// mutate stored state outside an update.
package memdb

import (
	"sync"

	"github.com/tbrandon/codewords/codewords"
)

type DB struct {
	mu    sync.RWMutex
	games map[codewords.GameID]*codewords.Game
	users map[codewords.UserID]*codewords.User
}

func New() *DB {
	return &DB{
		games: make(map[codewords.GameID]*codewords.Game),
		users: make(map[codewords.UserID]*codewords.User),
	}
}

func (db *DB) Games() (map[codewords.GameID]*codewords.Game, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make(map[codewords.GameID]*codewords.Game, len(db.games))
	for id, g := range db.games {
		out[id] = g.Clone()
	}
	return out, nil
}

func (db *DB) Game(gID codewords.GameID) (*codewords.Game, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	g, ok := db.games[gID]
	if !ok {
		return nil, codewords.ErrGameNotFound
	}
	return g.Clone(), nil
}

func (db *DB) InsertGame(g *codewords.Game) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.games[g.ID]; ok {
		return codewords.ErrGameExists
	}
	db.games[g.ID] = g.Clone()
	return nil
}

func (db *DB) UpdateGame(g *codewords.Game) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.games[g.ID]; !ok {
		return codewords.ErrGameNotFound
	}
	db.games[g.ID] = g.Clone()
	return nil
}

func (db *DB) NewUser(u *codewords.User) (codewords.UserID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	uc := u.Clone()
	uc.ID = codewords.NewUserID()
	db.users[uc.ID] = uc
	return uc.ID, nil
}

func (db *DB) User(uID codewords.UserID) (*codewords.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	u, ok := db.users[uID]
	if !ok {
		return nil, codewords.ErrUserNotFound
	}
	return u.Clone(), nil
}
