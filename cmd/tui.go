package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse authors interactively",
	Long:  `Opens an interactive browser for the authors on the running server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(newClient())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
