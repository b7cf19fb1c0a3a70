// boardgen-cli deals a board from the built-in word list and prints it
// as a colored 5x5 grid, affiliations included. Handy for eyeballing
// the generator and for running games on paper.
package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tbrandon/codewords/boardgen"
	"github.com/tbrandon/codewords/codewords"
	"github.com/tbrandon/codewords/wordlist"
)

func main() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	b, err := boardgen.New(wordlist.Default(), r)
	if err != nil {
		log.Fatalf("failed to generate board: %v", err)
	}

	words := make([]string, 0, len(b.Cards))
	for w := range b.Cards {
		words = append(words, w)
	}

	table := tablewriter.NewWriter(os.Stdout)
	for i := 0; i < codewords.Rows; i++ {
		var row []string
		var colors []tablewriter.Colors
		for j := 0; j < codewords.Columns; j++ {
			word := words[i*codewords.Columns+j]
			var c tablewriter.Colors
			switch b.Cards[word].Agent {
			case codewords.BlueAgent:
				c = append(c, tablewriter.FgBlueColor)
			case codewords.RedAgent:
				c = append(c, tablewriter.FgHiRedColor)
			case codewords.Assassin:
				c = append(c, tablewriter.BgHiRedColor)
			}
			colors = append(colors, c)
			row = append(row, word)
		}
		table.Rich(row, colors)
	}

	log.Printf("%s goes first", b.StartingTeam)
	table.Render()
}
