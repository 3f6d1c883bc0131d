package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/output"
)

var (
	forceDelete bool
	deleteJSON  bool
)

// confirmDelete asks before deleting. Tests replace it.
var confirmDelete = func(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	return confirm, err
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an author",
	Long:    `Deletes an author after confirmation (use -f to skip confirmation).`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd.Context(), newClient(), cmd.OutOrStdout(), args[0])
	},
}

func runDelete(ctx context.Context, c *client.Client, w io.Writer, id string) error {
	// JSON implies force (no prompts for machines)
	if !forceDelete && !deleteJSON {
		a, err := c.Author(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find author: %w", err)
		}
		if a == nil {
			return &authorcore.NotFoundError{ID: id}
		}

		ok, err := confirmDelete(fmt.Sprintf("Delete '%s' (%s)?", a.Info.Name, a.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled")
			return nil
		}
	}

	msg, err := c.Delete(ctx, id)
	if err != nil {
		if deleteJSON {
			return output.Error(errorCode(err), err.Error())
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if deleteJSON {
		return output.SuccessMessage(msg.Message)
	}
	fmt.Fprintln(w, msg.Message)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteJSON, "json", false, "Output as JSON (implies --force)")
	rootCmd.AddCommand(deleteCmd)
}
