package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/output"
)

var (
	searchJSON  bool
	searchQuiet bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search authors",
	Long: `Runs a full-text search over author names, genders and ages.

Examples:
  authors search som*
  authors search gender:F
  authors search 'age:>30'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd.Context(), newClient(), cmd.OutOrStdout(), args[0])
	},
}

func runSearch(ctx context.Context, c *client.Client, w io.Writer, query string) error {
	authors, err := c.Search(ctx, query, searchLimit)
	if err != nil {
		if searchJSON {
			return output.Error(output.ErrValidation, err.Error())
		}
		return fmt.Errorf("search failed: %w", err)
	}
	return printAuthors(w, authors, searchJSON, searchQuiet, "No authors match "+query)
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().BoolVarP(&searchQuiet, "quiet", "q", false, "Only output IDs (one per line)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (0 for server default)")
	rootCmd.AddCommand(searchCmd)
}
