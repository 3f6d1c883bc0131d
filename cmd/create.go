package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/output"
	"github.com/hmans/authors/internal/ui"
)

var (
	createGender string
	createJSON   bool
)

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"c", "new"},
	Short:   "Create a new author",
	Long: `Creates a new author with the given name. Age can't be set here; use
'authors update <id> --age N' afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := authorcore.CreateAuthor{Name: args[0]}
		if cmd.Flags().Changed("gender") {
			op.Gender = &createGender
		}
		return runCreate(cmd.Context(), newClient(), cmd.OutOrStdout(), op)
	},
}

func runCreate(ctx context.Context, c *client.Client, w io.Writer, op authorcore.CreateAuthor) error {
	a, err := c.Create(ctx, op)
	if err != nil {
		if createJSON {
			return output.Error(output.ErrServer, err.Error())
		}
		return fmt.Errorf("failed to create author: %w", err)
	}

	if createJSON {
		return output.Success(a, "Author created")
	}
	fmt.Fprintf(w, "Created %s %s\n", ui.ID.Render(a.ID), ui.Name.Render(a.Info.Name))
	return nil
}

func init() {
	createCmd.Flags().StringVarP(&createGender, "gender", "g", "", "Gender of the new author")
	createCmd.Flags().BoolVar(&createJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(createCmd)
}
