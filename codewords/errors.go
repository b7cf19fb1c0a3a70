package codewords

import "errors"

var (
	// Not-found errors.
	ErrGameNotFound = errors.New("codewords: game not found")
	ErrUserNotFound = errors.New("codewords: user not found")
	ErrCardNotFound = errors.New("codewords: card not found")

	// Invalid-state errors, operations the game's lifecycle forbids.
	ErrGameNotStarted = errors.New("codewords: game is not started")
	ErrGameStarted    = errors.New("codewords: game is already started")
	ErrGameNotReady   = errors.New("codewords: game cannot be started")

	// ErrAlreadyJoined means the user is already on the game's roster.
	ErrAlreadyJoined = errors.New("codewords: user already joined this game")

	// ErrNotYourTurn means the guesser's team doesn't hold the turn.
	ErrNotYourTurn = errors.New("codewords: not this player's turn")
	// ErrCardRevealed means the named card was already guessed.
	ErrCardRevealed = errors.New("codewords: card already revealed")

	// Constraint violations.
	ErrInsufficientPool = errors.New("codewords: word pool has fewer than 25 distinct words")
	ErrEmptyTeam        = errors.New("codewords: not enough players to form two teams")
	ErrGameExists       = errors.New("codewords: game already exists")

	// Clue errors.
	ErrNotSpymaster  = errors.New("codewords: only the active team's spymaster can give a clue")
	ErrPromptActive  = errors.New("codewords: a clue is already active for this turn")
	ErrMalformedClue = errors.New("codewords: malformed clue, want \"word count\"")
)
