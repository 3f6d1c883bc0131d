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
	updateName   string
	updateGender string
	updateAge    int
	updateJSON   bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an author's fields",
	Long: `Updates one or more fields of an existing author.

Use flags to specify which fields to update:
  --name      Change the name
  --gender    Change the gender
  --age       Change the age

With the default update mode, empty strings and 0 leave a field unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := authorcore.UpdateAuthor{ID: args[0]}
		if cmd.Flags().Changed("name") {
			op.Name = &updateName
		}
		if cmd.Flags().Changed("gender") {
			op.Gender = &updateGender
		}
		if cmd.Flags().Changed("age") {
			op.Age = &updateAge
		}
		if op.Name == nil && op.Gender == nil && op.Age == nil {
			if updateJSON {
				return output.Error(output.ErrValidation, "no changes specified")
			}
			return fmt.Errorf("no changes specified (use --name, --gender or --age)")
		}
		return runUpdate(cmd.Context(), newClient(), cmd.OutOrStdout(), op)
	},
}

func runUpdate(ctx context.Context, c *client.Client, w io.Writer, op authorcore.UpdateAuthor) error {
	a, err := c.Update(ctx, op)
	if err != nil {
		if updateJSON {
			return output.Error(errorCode(err), err.Error())
		}
		return fmt.Errorf("failed to update author: %w", err)
	}

	if updateJSON {
		return output.Success(a, "Author updated")
	}
	fmt.Fprintf(w, "Updated %s\n", ui.ID.Render(a.ID))
	fmt.Fprintln(w, ui.RenderAuthor(a))
	return nil
}

// errorCode maps a client error to an output error code.
func errorCode(err error) string {
	if client.IsNotFound(err) {
		return output.ErrNotFound
	}
	return output.ErrServer
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	updateCmd.Flags().StringVarP(&updateGender, "gender", "g", "", "New gender")
	updateCmd.Flags().IntVarP(&updateAge, "age", "a", 0, "New age")
	updateCmd.Flags().BoolVar(&updateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(updateCmd)
}
