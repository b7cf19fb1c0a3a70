package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/namsral/flag"
	"github.com/tbrandon/codewords/codewords"
	"github.com/tbrandon/codewords/memdb"
	"github.com/tbrandon/codewords/sqldb"
	"github.com/tbrandon/codewords/web"
	"github.com/tbrandon/codewords/wordlist"

	cryptorand "crypto/rand"
	"math/rand"
)

func main() {
	// Flags can come from the environment or a .env file as well as the
	// command line.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	var (
		addr      = flag.String("addr", ":8080", "HTTP service address")
		dbPath    = flag.String("db_path", "mem", "Path to the SQLite DB file, or 'mem' for in-memory storage")
		wordsPath = flag.String("words_path", "", "Path to a newline-delimited word list, uses the built-in list if empty")
	)
	flag.Parse()

	// Game IDs double as access tokens, so all randomness comes from a
	// crypto-backed source.
	r := rand.New(cryptoRandSource{})

	words := wordlist.Default()
	if *wordsPath != "" {
		var err error
		if words, err = wordlist.FromFile(*wordsPath); err != nil {
			log.Fatalf("failed to load word list: %v", err)
		}
	}
	if len(words) < codewords.BoardSize {
		log.Fatalf("word list has %d words, need at least %d", len(words), codewords.BoardSize)
	}

	var db codewords.Store
	if *dbPath == "mem" {
		db = memdb.New()
	} else {
		sdb, err := sqldb.New(*dbPath)
		if err != nil {
			log.Fatalf("failed to initialize datastore: %v", err)
		}
		defer sdb.Close()
		db = sdb

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-c
			sdb.Close()
			os.Exit(1)
		}()
	}

	sc, err := loadKeys()
	if err != nil {
		log.Fatalf("failed to load cookie keys: %v", err)
	}

	log.Printf("Server is running on %q", *addr)
	if err := http.ListenAndServe(*addr, web.New(db, r, sc, words)); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

type cryptoRandSource struct{}

func (cryptoRandSource) Int63() int64 {
	var buf [8]byte
	_, err := cryptorand.Read(buf[:])
	if err != nil {
		panic(err)
	}
	return int64(buf[0]) |
		int64(buf[1])<<8 |
		int64(buf[2])<<16 |
		int64(buf[3])<<24 |
		int64(buf[4])<<32 |
		int64(buf[5])<<40 |
		int64(buf[6])<<48 |
		int64(buf[7]&0x7f)<<56
}

func (cryptoRandSource) Seed(int64) {}

func loadKeys() (*securecookie.SecureCookie, error) {
	hashKey, err := loadOrGenKey("hashKey")
	if err != nil {
		return nil, err
	}

	blockKey, err := loadOrGenKey("blockKey")
	if err != nil {
		return nil, err
	}

	return securecookie.New(hashKey, blockKey), nil
}

func loadOrGenKey(name string) ([]byte, error) {
	f, err := os.ReadFile(name)
	if err == nil {
		return f, nil
	}

	dat := securecookie.GenerateRandomKey(32)
	if dat == nil {
		return nil, errors.New("failed to generate key")
	}

	if err := os.WriteFile(name, dat, 0600); err != nil {
		return nil, errors.New("error writing key file")
	}
	return dat, nil
}
