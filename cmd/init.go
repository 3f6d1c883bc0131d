package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/config"
	"github.com/hmans/authors/internal/ui"
)

// DefaultSeedFile is the seed file name written by init --seed.
const DefaultSeedFile = "authors.yaml"

var (
	initForce bool
	initSeed  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Creates ` + config.ConfigFile + ` in the current directory (or at --config) with
the default settings.

Use --seed to also write the built-in authors to ` + DefaultSeedFile + ` and point
the config at it, so the starting data can be edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigFile
		}
		return runInit(cmd.OutOrStdout(), path)
	},
}

func runInit(w io.Writer, path string) error {
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	c := config.Default()
	if initSeed {
		seedPath := filepath.Join(filepath.Dir(path), DefaultSeedFile)
		if err := author.SaveSeed(seedPath, author.DefaultSeed()); err != nil {
			return fmt.Errorf("writing seed file: %w", err)
		}
		// stored relative so the directory can move
		c.Authors.SeedFile = DefaultSeedFile
		fmt.Fprintf(w, "Wrote %s\n", ui.Primary.Render(seedPath))
	}

	if err := c.Save(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", ui.Primary.Render(path))
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVar(&initSeed, "seed", false, "Also write the built-in authors to "+DefaultSeedFile)
	rootCmd.AddCommand(initCmd)
}
