package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/output"
	"github.com/hmans/authors/internal/ui"
)

var (
	listJSON  bool
	listQuiet bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all authors",
	Long:    `Lists every author on the server in store order.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), newClient(), cmd.OutOrStdout())
	},
}

func runList(ctx context.Context, c *client.Client, w io.Writer) error {
	authors, err := c.Authors(ctx)
	if err != nil {
		if listJSON {
			return output.Error(output.ErrServer, err.Error())
		}
		return fmt.Errorf("failed to list authors: %w", err)
	}
	return printAuthors(w, authors, listJSON, listQuiet, "No authors found. Create one with: authors create <name>")
}

// printAuthors renders authors in the format selected by the flags.
func printAuthors(w io.Writer, authors []*author.Author, asJSON, quiet bool, empty string) error {
	switch {
	case asJSON:
		return output.SuccessMultiple(authors)
	case quiet:
		for _, a := range authors {
			fmt.Fprintln(w, a.ID)
		}
	case len(authors) == 0:
		fmt.Fprintln(w, ui.Muted.Render(empty))
	default:
		fmt.Fprintln(w, ui.RenderTable(authors))
	}
	return nil
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only output IDs (one per line)")
	rootCmd.AddCommand(listCmd)
}
