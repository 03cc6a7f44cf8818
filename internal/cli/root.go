// Package cli implements the atlaspack command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/atlas"
)

// Root builds the atlaspack root command with all subcommands attached.
// Logging goes to stderr at info level, or debug with --verbose.
func Root() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "atlaspack",
		Short: "atlaspack packs sprite images into texture atlases",
		Long: `atlaspack reads a TOML manifest describing a set of sprite images,
packs them into a single atlas texture, and writes the atlas image
together with a JSON layout mapping each sprite to its region.`,
		Version:      atlas.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			atlas.SetLogger(slog.New(handler))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPackCmd())
	root.AddCommand(newInfoCmd())
	return root
}
