// Package sqldb is a SQLite-backed Store. Games are persisted whole as
// JSON blobs, which round-trips every field of the aggregate without a
// schema migration each time the model grows a field.
//
// NOTE: SQLite doesn't support concurrent writers, so we don't hand the
// *sql.DB to callers. All access goes through a single goroutine fed by
// a channel, which also gives the engine the per-game serialization it
// asks of its Store.
package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tbrandon/codewords/codewords"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	dbChan   chan func(*sql.DB)
	doneChan chan struct{}
}

const schema = `
CREATE TABLE IF NOT EXISTS Games (
	id TEXT PRIMARY KEY,
	data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS Users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
`

// New opens (creating if needed) the SQLite database at the given path.
func New(fn string) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %q: %w", fn, err)
	}

	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
	}
	go db.run(sdb)
	return db, nil
}

// run owns the *sql.DB. It applies queued operations one at a time until
// Close.
func (db *DB) run(sdb *sql.DB) {
	for {
		select {
		case dbFn := <-db.dbChan:
			dbFn(sdb)
		case <-db.doneChan:
			sdb.Close()
			return
		}
	}
}

func (db *DB) Close() error {
	close(db.doneChan)
	return nil
}

// do runs fn on the database goroutine and waits for it to finish.
func (db *DB) do(fn func(*sql.DB) error) error {
	errChan := make(chan error, 1)
	db.dbChan <- func(sdb *sql.DB) {
		errChan <- fn(sdb)
	}
	return <-errChan
}

func (db *DB) Games() (map[codewords.GameID]*codewords.Game, error) {
	out := make(map[codewords.GameID]*codewords.Game)
	err := db.do(func(sdb *sql.DB) error {
		rows, err := sdb.Query(`SELECT data FROM Games`)
		if err != nil {
			return fmt.Errorf("failed to query games: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var dat []byte
			if err := rows.Scan(&dat); err != nil {
				return fmt.Errorf("failed to scan game: %w", err)
			}
			g, err := unmarshalGame(dat)
			if err != nil {
				return err
			}
			out[g.ID] = g
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) Game(gID codewords.GameID) (*codewords.Game, error) {
	var g *codewords.Game
	err := db.do(func(sdb *sql.DB) error {
		var dat []byte
		err := sdb.QueryRow(`SELECT data FROM Games WHERE id = ?`, string(gID)).Scan(&dat)
		if err == sql.ErrNoRows {
			return codewords.ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load game %q: %w", gID, err)
		}
		g, err = unmarshalGame(dat)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (db *DB) InsertGame(g *codewords.Game) error {
	dat, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game %q: %w", g.ID, err)
	}

	return db.do(func(sdb *sql.DB) error {
		var exists int
		err := sdb.QueryRow(`SELECT 1 FROM Games WHERE id = ?`, string(g.ID)).Scan(&exists)
		if err == nil {
			return codewords.ErrGameExists
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check for game %q: %w", g.ID, err)
		}

		if _, err := sdb.Exec(`INSERT INTO Games (id, data) VALUES (?, ?)`, string(g.ID), dat); err != nil {
			return fmt.Errorf("failed to insert game %q: %w", g.ID, err)
		}
		return nil
	})
}

func (db *DB) UpdateGame(g *codewords.Game) error {
	dat, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game %q: %w", g.ID, err)
	}

	return db.do(func(sdb *sql.DB) error {
		res, err := sdb.Exec(`UPDATE Games SET data = ? WHERE id = ?`, dat, string(g.ID))
		if err != nil {
			return fmt.Errorf("failed to update game %q: %w", g.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count updated rows: %w", err)
		}
		if n == 0 {
			return codewords.ErrGameNotFound
		}
		return nil
	})
}

func (db *DB) NewUser(u *codewords.User) (codewords.UserID, error) {
	uID := codewords.NewUserID()
	err := db.do(func(sdb *sql.DB) error {
		if _, err := sdb.Exec(`INSERT INTO Users (id, name) VALUES (?, ?)`, string(uID), u.Name); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return uID, nil
}

func (db *DB) User(uID codewords.UserID) (*codewords.User, error) {
	u := &codewords.User{ID: uID}
	err := db.do(func(sdb *sql.DB) error {
		err := sdb.QueryRow(`SELECT name FROM Users WHERE id = ?`, string(uID)).Scan(&u.Name)
		if err == sql.ErrNoRows {
			return codewords.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load user %q: %w", uID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func unmarshalGame(dat []byte) (*codewords.Game, error) {
	var g codewords.Game
	if err := json.Unmarshal(dat, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}
