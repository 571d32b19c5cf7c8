package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aitorres/lancini/internal/config"
	"github.com/aitorres/lancini/internal/lexicon"
	"github.com/aitorres/lancini/internal/logging"
	"github.com/aitorres/lancini/internal/search"
	"github.com/aitorres/lancini/internal/store"
)

var (
	genMaxLength int
	genBuffer    int
	genLexicon   string
	genStore     string
	genBackend   string
)

// generateCmd runs the palindrome search
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Search for palindromes that split into dictionary words",
	Long: `Generates every candidate from the resume length up to --max-length,
keeps the palindromes that segment into lexicon words, and appends them to
the store.

The resume length is the longest palindrome already stored. Interrupting
the search (Ctrl-C) flushes pending results before exiting.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genMaxLength, "max-length", 0, "Longest candidate to generate (default from config)")
	generateCmd.Flags().IntVar(&genBuffer, "buffer", 0, "Palindromes buffered between store writes (default from config)")
	generateCmd.Flags().StringVar(&genLexicon, "lexicon", "", "Word list, one word per line (default from config)")
	generateCmd.Flags().StringVar(&genStore, "store", "", "Palindrome store path (default from config)")
	generateCmd.Flags().StringVar(&genBackend, "backend", "", "Store backend: csv or sqlite (default from config)")
}

// generateConfig applies the generate flags on top of the loaded config.
func generateConfig() (*config.Config, error) {
	c := *cfg
	if genMaxLength > 0 {
		c.Search.MaxLength = genMaxLength
	}
	if genBuffer > 0 {
		c.Search.FlushBufferSize = genBuffer
	}
	if genLexicon != "" {
		c.Lexicon.Path = genLexicon
	}
	if genStore != "" {
		c.Store.Path = genStore
	}
	if genBackend != "" {
		c.Store.Backend = genBackend
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	c, err := generateConfig()
	if err != nil {
		return err
	}

	lexOpts := c.LexiconOptions()
	lexOpts.Logger = logs.Get(logging.CategoryLexicon)
	lex, err := lexicon.Load(c.Lexicon.Path, lexOpts)
	if err != nil {
		return err
	}

	storeLog := logs.Get(logging.CategoryStore)
	lock, err := store.Lock(c.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil {
			storeLog.Warn("Failed to release store lock", zap.String("lock", lock.Path()), zap.Error(uerr))
		}
	}()

	st, err := store.Open(c.StoreOptions())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close store: %w", cerr))
		}
	}()
	storeLog.Info("Store opened", zap.String("path", c.Store.Path), zap.String("backend", c.Store.Backend))

	engine := search.New(c.SearchEngineConfig(), lex, st, logs.Get(logging.CategorySearch))
	stats, err := engine.Run(ctx)

	if stats.StartLength > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Accepted %d palindromes (lengths %d-%d, %d candidates, %d already stored)\n",
			stats.Accepted, stats.StartLength, c.Search.MaxLength, stats.Candidates, stats.SkippedKnown)
	}
	return err
}
