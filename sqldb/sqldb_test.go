package sqldb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tbrandon/codewords/codewords"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "codewords.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testGame(id codewords.GameID) *codewords.Game {
	return &codewords.Game{
		ID:     id,
		Status: codewords.Started,
		Players: []*codewords.Player{
			{UserID: "u1", Name: "Ann", Team: codewords.RedTeam, Spymaster: true},
			{UserID: "u2", Name: "Ben", Team: codewords.BlueTeam, Spymaster: true},
		},
		Cards: map[string]*codewords.Card{
			"apple": {Value: "apple", Agent: codewords.RedAgent, Selected: true},
			"cliff": {Value: "cliff", Agent: codewords.BlueAgent},
		},
		Turn:               codewords.BlueTeam,
		Prompt:             &codewords.Clue{Word: "rocks", Count: 1},
		GuessesRemaining:   2,
		RedCardsRemaining:  0,
		BlueCardsRemaining: 1,
	}
}

// The blob encoding has to round-trip every field of the aggregate,
// including per-card reveals and per-player team and spymaster flags.
func TestRoundTrip(t *testing.T) {
	db := testDB(t)

	want := testGame("abcdef")
	if err := db.InsertGame(want); err != nil {
		t.Fatalf("InsertGame: %v", err)
	}

	got, err := db.Game("abcdef")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected game (-want +got)\n%s", diff)
	}
}

func TestInsert_Duplicate(t *testing.T) {
	db := testDB(t)

	if err := db.InsertGame(testGame("abcdef")); err != nil {
		t.Fatalf("InsertGame: %v", err)
	}
	if err := db.InsertGame(testGame("abcdef")); !errors.Is(err, codewords.ErrGameExists) {
		t.Errorf("second insert = %v, want ErrGameExists", err)
	}
}

func TestUpdateGame(t *testing.T) {
	db := testDB(t)

	g := testGame("abcdef")
	if err := db.InsertGame(g); err != nil {
		t.Fatalf("InsertGame: %v", err)
	}

	g.Status = codewords.Completed
	g.Winner = codewords.BlueTeam
	if err := db.UpdateGame(g); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	got, err := db.Game("abcdef")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if got.Status != codewords.Completed || got.Winner != codewords.BlueTeam {
		t.Errorf("got status %q winner %q, want %q %q", got.Status, got.Winner, codewords.Completed, codewords.BlueTeam)
	}
}

func TestUpdateGame_NotFound(t *testing.T) {
	db := testDB(t)

	if err := db.UpdateGame(testGame("abcdef")); !errors.Is(err, codewords.ErrGameNotFound) {
		t.Errorf("UpdateGame = %v, want ErrGameNotFound", err)
	}
}

func TestGame_NotFound(t *testing.T) {
	db := testDB(t)

	if _, err := db.Game("nogame"); !errors.Is(err, codewords.ErrGameNotFound) {
		t.Errorf("Game = %v, want ErrGameNotFound", err)
	}
}

func TestGames(t *testing.T) {
	db := testDB(t)

	for _, id := range []codewords.GameID{"aaaaaa", "bbbbbb"} {
		if err := db.InsertGame(testGame(id)); err != nil {
			t.Fatalf("InsertGame(%q): %v", id, err)
		}
	}

	games, err := db.Games()
	if err != nil {
		t.Fatalf("Games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
}

func TestUsers(t *testing.T) {
	db := testDB(t)

	id, err := db.NewUser(&codewords.User{Name: "Ann"})
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	u, err := db.User(id)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	want := &codewords.User{ID: id, Name: "Ann"}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("unexpected user (-want +got)\n%s", diff)
	}

	if _, err := db.User("nouser"); !errors.Is(err, codewords.ErrUserNotFound) {
		t.Errorf("User = %v, want ErrUserNotFound", err)
	}
}
