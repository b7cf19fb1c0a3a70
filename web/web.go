// Package web is the HTTP surface of the game server. Handlers decode
// requests, call into the game engine under a per-game lock, persist the
// result, and push the updated game out to websocket watchers.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
	"github.com/tbrandon/codewords/codewords"
	"github.com/tbrandon/codewords/game"
	"github.com/tbrandon/codewords/hub"
)

type Srv struct {
	sc    *securecookie.SecureCookie
	h     *hub.Hub
	mux   *mux.Router
	db    codewords.Store
	r     *rand.Rand
	words []string

	upgrader websocket.Upgrader

	// gameMus serializes read-modify-write cycles per game ID, so two
	// concurrent guesses on one game can't lose an update.
	mu      sync.Mutex
	gameMus map[codewords.GameID]*sync.Mutex
}

// New returns an initialized server. Boards for new games are drawn
// from the given word pool.
func New(db codewords.Store, r *rand.Rand, sc *securecookie.SecureCookie, words []string) *Srv {
	s := &Srv{
		sc:      sc,
		h:       hub.New(),
		db:      db,
		r:       r,
		words:   words,
		gameMus: make(map[codewords.GameID]*sync.Mutex),
	}
	s.mux = s.initMux()
	return s
}

func (s *Srv) initMux() *mux.Router {
	m := mux.NewRouter()
	// New user.
	m.HandleFunc("/api/user", s.handle(s.serveCreateUser)).Methods("POST")
	// Load user.
	m.HandleFunc("/api/user", s.handle(s.serveUser)).Methods("GET")
	// All games.
	m.HandleFunc("/api/games", s.handle(s.serveGames)).Methods("GET")
	// New game.
	m.HandleFunc("/api/game", s.handle(s.serveCreateGame)).Methods("POST")
	// Get game.
	m.HandleFunc("/api/game/{id}", s.handle(s.serveGame)).Methods("GET")
	// Join game.
	m.HandleFunc("/api/game/{id}/join", s.handle(s.serveJoinGame)).Methods("POST")
	// Start game.
	m.HandleFunc("/api/game/{id}/start", s.handle(s.serveStartGame)).Methods("POST")
	// Post a clue to a game.
	m.HandleFunc("/api/game/{id}/clue", s.handle(s.serveClue)).Methods("POST")
	// Post a card guess to a game.
	m.HandleFunc("/api/game/{id}/guess", s.handle(s.serveGuess)).Methods("POST")
	// WebSocket handler for game updates.
	m.HandleFunc("/api/game/{id}/ws", s.handle(s.serveData)).Methods("GET")
	return m
}

func (s *Srv) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handlerFunc is a handler that surfaces its failure instead of writing
// it out itself, so status mapping lives in one place.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Srv) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			httpError(w, err)
		}
	}
}

// badRequest marks a caller-input error that should come back as a 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

// authRequired is returned when no valid user cookie came with the
// request.
var authRequired = errors.New("not logged in")

func httpError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var br badRequest
	switch {
	case errors.Is(err, codewords.ErrGameNotFound),
		errors.Is(err, codewords.ErrCardNotFound):
		code = http.StatusNotFound
	case errors.Is(err, codewords.ErrGameNotStarted),
		errors.Is(err, codewords.ErrGameStarted),
		errors.Is(err, codewords.ErrGameNotReady),
		errors.Is(err, codewords.ErrNotYourTurn),
		errors.Is(err, codewords.ErrCardRevealed),
		errors.Is(err, codewords.ErrPromptActive),
		errors.Is(err, codewords.ErrAlreadyJoined):
		code = http.StatusConflict
	case errors.Is(err, codewords.ErrNotSpymaster),
		errors.Is(err, codewords.ErrUserNotFound):
		code = http.StatusForbidden
	case errors.Is(err, codewords.ErrMalformedClue):
		code = http.StatusBadRequest
	case errors.Is(err, authRequired):
		code = http.StatusUnauthorized
	case errors.As(err, &br):
		code = http.StatusBadRequest
	}
	http.Error(w, err.Error(), code)
}

func (s *Srv) serveCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest{fmt.Errorf("failed to decode request: %w", err)}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest{errors.New("no name given")}
	}

	id, err := s.db.NewUser(&codewords.User{Name: name})
	if err != nil {
		return err
	}

	encoded, err := s.sc.Encode("auth", id)
	if err != nil {
		return fmt.Errorf("failed to encode auth cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:  "Authorization",
		Value: encoded,
	})

	return jsonResp(w, &codewords.User{ID: id, Name: name})
}

func (s *Srv) serveUser(w http.ResponseWriter, r *http.Request) error {
	u, err := s.loadUser(r)
	if err != nil {
		return err
	}
	if u == nil {
		return authRequired
	}
	return jsonResp(w, u)
}

func (s *Srv) serveGames(w http.ResponseWriter, r *http.Request) error {
	games, err := s.db.Games()
	if err != nil {
		return err
	}
	return jsonResp(w, games)
}

func (s *Srv) serveCreateGame(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.requireUser(r); err != nil {
		return err
	}

	g, err := game.New(codewords.RandomGameID(s.r), time.Now(), s.words, s.r)
	if err != nil {
		return err
	}
	if err := s.db.InsertGame(g); err != nil {
		return err
	}

	return jsonResp(w, g)
}

func (s *Srv) serveGame(w http.ResponseWriter, r *http.Request) error {
	g, err := s.db.Game(gameID(r))
	if err != nil {
		return err
	}
	return jsonResp(w, g)
}

func (s *Srv) serveJoinGame(w http.ResponseWriter, r *http.Request) error {
	u, err := s.requireUser(r)
	if err != nil {
		return err
	}

	g, err := s.mutateGame(gameID(r), func(g *codewords.Game) error {
		return game.AddPlayer(g, u)
	})
	if err != nil {
		return err
	}
	return jsonResp(w, g)
}

func (s *Srv) serveStartGame(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.requireUser(r); err != nil {
		return err
	}

	g, err := s.mutateGame(gameID(r), func(g *codewords.Game) error {
		return game.Start(g, s.r)
	})
	if err != nil {
		return err
	}
	return jsonResp(w, g)
}

func (s *Srv) serveClue(w http.ResponseWriter, r *http.Request) error {
	u, err := s.requireUser(r)
	if err != nil {
		return err
	}

	// Clues come in either structured or as the combined "word count"
	// form, e.g. "muffins 3".
	var req struct {
		Word  string `json:"word"`
		Count int    `json:"count"`
		Clue  string `json:"clue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest{fmt.Errorf("failed to decode request: %w", err)}
	}

	clue := &codewords.Clue{Word: req.Word, Count: req.Count}
	if req.Clue != "" {
		if clue, err = codewords.ParseClue(req.Clue); err != nil {
			return err
		}
	}

	g, err := s.mutateGame(gameID(r), func(g *codewords.Game) error {
		return game.GiveClue(g, u.ID, clue)
	})
	if err != nil {
		return err
	}
	return jsonResp(w, g)
}

func (s *Srv) serveGuess(w http.ResponseWriter, r *http.Request) error {
	u, err := s.requireUser(r)
	if err != nil {
		return err
	}

	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest{fmt.Errorf("failed to decode request: %w", err)}
	}

	g, err := s.mutateGame(gameID(r), func(g *codewords.Game) error {
		return game.Guess(g, req.Word, u.ID)
	})
	if err != nil {
		return err
	}
	return jsonResp(w, g)
}

func (s *Srv) serveData(w http.ResponseWriter, r *http.Request) error {
	u, err := s.requireUser(r)
	if err != nil {
		return err
	}

	gID := gameID(r)
	g, err := s.db.Game(gID)
	if err != nil {
		return err
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}
	s.h.Register(ws, gID, u.ID)

	// New watchers get the current snapshot right away instead of
	// waiting for the next mutation.
	if err := s.h.ToUser(gID, u.ID, NewGameUpdate(g)); err != nil {
		log.Printf("failed to send snapshot for game %q: %v", gID, err)
	}
	return nil
}

// mutateGame runs fn over the stored game as one read-modify-write
// transaction and pushes the result to the game's watchers. On failure
// nothing is stored or broadcast.
func (s *Srv) mutateGame(gID codewords.GameID, fn func(*codewords.Game) error) (*codewords.Game, error) {
	unlock := s.lockGame(gID)
	defer unlock()

	g, err := s.db.Game(gID)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.db.UpdateGame(g); err != nil {
		return nil, err
	}

	if err := s.h.ToGame(gID, NewGameUpdate(g)); err != nil {
		log.Printf("failed to broadcast update for game %q: %v", gID, err)
	}
	return g, nil
}

func (s *Srv) lockGame(gID codewords.GameID) func() {
	s.mu.Lock()
	gm, ok := s.gameMus[gID]
	if !ok {
		gm = &sync.Mutex{}
		s.gameMus[gID] = gm
	}
	s.mu.Unlock()

	gm.Lock()
	return gm.Unlock
}

func gameID(r *http.Request) codewords.GameID {
	return codewords.GameID(mux.Vars(r)["id"])
}

func (s *Srv) requireUser(r *http.Request) (*codewords.User, error) {
	u, err := s.loadUser(r)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, authRequired
	}
	return u, nil
}

func (s *Srv) loadUser(r *http.Request) (*codewords.User, error) {
	c, err := r.Cookie("Authorization")
	if err == http.ErrNoCookie {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var uID codewords.UserID
	if err := s.sc.Decode("auth", c.Value, &uID); err != nil {
		// If we can't parse it, assume it's an old auth cookie and treat
		// them as not logged in.
		return nil, nil
	}

	u, err := s.db.User(uID)
	if errors.Is(err, codewords.ErrUserNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return u, nil
}

func jsonResp(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
