package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aitorres/lancini/internal/lexicon"
	"github.com/aitorres/lancini/internal/logging"
	"github.com/aitorres/lancini/internal/zaloma"
)

var (
	zalomaLexicon string
	zalomaWorkers int
)

// zalomaCmd runs the rotation match search
var zalomaCmd = &cobra.Command{
	Use:   "zaloma",
	Short: "Find rotation-matched triples of six-letter words",
	Long: `Prints every triple "w1 w2 w3" of six-letter lexicon words where the
middle pair of w1 starts w2, the last pair of w1 starts w3, and the last pair
of w2 is the middle pair of w3.

Results are printed, never stored.`,
	Args: cobra.NoArgs,
	RunE: runZaloma,
}

func init() {
	zalomaCmd.Flags().StringVar(&zalomaLexicon, "lexicon", "", "Word list, one word per line (default from config)")
	zalomaCmd.Flags().IntVar(&zalomaWorkers, "workers", 0, "Parallel workers (default from config)")
}

func runZaloma(cmd *cobra.Command, args []string) error {
	path := cfg.Lexicon.Path
	if zalomaLexicon != "" {
		path = zalomaLexicon
	}
	workers := cfg.Zaloma.Workers
	if zalomaWorkers > 0 {
		workers = zalomaWorkers
	}

	lexOpts := cfg.LexiconOptions()
	lexOpts.Logger = logs.Get(logging.CategoryLexicon)
	lex, err := lexicon.Load(path, lexOpts)
	if err != nil {
		return err
	}

	m := zaloma.New(lex.WithLength(zaloma.WordLength), zaloma.Options{Workers: workers}, logs.Get(logging.CategoryZaloma))

	out := cmd.OutOrStdout()
	_, err = m.Run(cmd.Context(), func(t zaloma.Triple) error {
		_, werr := fmt.Fprintln(out, t)
		return werr
	})
	return err
}
