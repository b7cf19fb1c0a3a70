package codewords

// Store is the persistence contract the engine's callers use. Games and
// users are stored whole; implementations must serialize operations on
// the same GameID so a read-modify-write of one aggregate never races
// another.
type Store interface {
	// Games returns a snapshot of every game, keyed by ID.
	Games() (map[GameID]*Game, error)
	// Game returns the game with the given ID, or ErrGameNotFound.
	Game(GameID) (*Game, error)
	// InsertGame stores a new game, failing with ErrGameExists if the ID
	// is taken.
	InsertGame(*Game) error
	// UpdateGame replaces the stored game with the same ID, failing with
	// ErrGameNotFound if it was never inserted.
	UpdateGame(*Game) error

	// NewUser stores a user and returns its assigned ID.
	NewUser(*User) (UserID, error)
	// User returns the user with the given ID, or ErrUserNotFound.
	User(UserID) (*User, error)
}
