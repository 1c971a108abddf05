// relevancectl ranks sentences of a local text file interactively. It is a
// standalone front end to the same relevance engine relevanced serves over
// HTTP, useful for inspecting scores and token statistics offline.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	"github.com/relevanced/relevanced/internal/relevance/ranker"
	"github.com/relevanced/relevanced/internal/relevance/stemmer"
)

func main() {
	file := flag.String("file", "", "path to the text file to rank against")
	top := flag.Int("top", 10, "maximum number of results per query (0 = all)")
	stemName := flag.String("stemmer", "suffix", `stemming algorithm: "suffix" or "snowball"`)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: relevancectl -file <path> [-top N] [-stemmer suffix|snowball]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	c := corpus.New(string(data), corpus.WithStemmer(stemmer.New(*stemName)))
	fmt.Printf("loaded %s: %d sentences\n", *file, c.Len())
	fmt.Println(`type a query and press enter; "stats <token>" shows token figures; ctrl-d exits`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Println("no results")
			continue
		}
		if token, ok := strings.CutPrefix(line, "stats "); ok {
			stats := c.TokenStats(strings.TrimSpace(token))
			fmt.Printf("token=%s tf=%.6f idf=%.6f\n", stats.Token, stats.TF, stats.IDF)
			continue
		}

		results := ranker.Rank(c, line, *top)
		if len(results) == 0 {
			fmt.Println("no results")
			continue
		}
		for i, r := range results {
			fmt.Printf("%2d. %.4f  %s\n", i+1, r.Score, r.Sentence)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "reading input: %v\n", err)
		os.Exit(1)
	}
}
