package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/aitorres/lancini/internal/search"
	"github.com/aitorres/lancini/internal/store"
)

var (
	statusStore   string
	statusBackend string
)

// statusCmd shows what a generate run would resume from
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored palindromes and the next resume length",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusStore, "store", "", "Palindrome store path (default from config)")
	statusCmd.Flags().StringVar(&statusBackend, "backend", "", "Store backend: csv or sqlite (default from config)")
}

func runStatus(cmd *cobra.Command, args []string) (err error) {
	c := *cfg
	if statusStore != "" {
		c.Store.Path = statusStore
	}
	if statusBackend != "" {
		c.Store.Backend = statusBackend
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	opts := c.StoreOptions()

	st, err := store.Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close store: %w", cerr))
		}
	}()

	known, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store:       %s (%s)\n", opts.Path, opts.Backend)
	fmt.Fprintf(out, "Stored:      %d\n", len(known))
	fmt.Fprintf(out, "Longest:     %d\n", store.MaxLength(known))
	fmt.Fprintf(out, "Next start:  %d\n", search.StartLength(known, c.Search.StartLengthFloor))
	return nil
}
