package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/output"
	"github.com/hmans/authors/internal/ui"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single author",
	Long: `Displays one author. Use "first" or "second" instead of an ID to show the
author at that position.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), newClient(), cmd.OutOrStdout(), args[0])
	},
}

func runShow(ctx context.Context, c *client.Client, w io.Writer, id string) error {
	a, err := fetchForShow(ctx, c, id)
	if err != nil {
		if showJSON {
			return output.Error(output.ErrServer, err.Error())
		}
		return fmt.Errorf("failed to fetch author: %w", err)
	}
	if a == nil {
		nf := &authorcore.NotFoundError{ID: id}
		if showJSON {
			return output.Error(output.ErrNotFound, nf.Error())
		}
		return nf
	}

	if showJSON {
		return output.Success(a, "")
	}
	fmt.Fprintln(w, ui.RenderAuthor(a))
	return nil
}

// fetchForShow resolves the positional aliases before falling back to an ID lookup.
func fetchForShow(ctx context.Context, c *client.Client, id string) (*author.Author, error) {
	switch id {
	case "first":
		return c.First(ctx)
	case "second":
		return c.Second(ctx)
	default:
		return c.Author(ctx, id)
	}
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}
