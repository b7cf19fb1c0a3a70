// Package wordlist supplies the candidate word pool boards are drawn
// from.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	_ "embed"
)

//go:embed words.txt
var defaultWords string

// Default returns the embedded word list.
func Default() []string {
	// Reading from memory can't fail.
	words, _ := parse(strings.NewReader(defaultWords))
	return words
}

// FromFile reads a newline-delimited word list. Words are lowercased
// and trimmed; blank lines and duplicates are dropped.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %q: %w", path, err)
	}
	defer f.Close()

	words, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %q: %w", path, err)
	}
	return words, nil
}

func parse(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words, sc.Err()
}
