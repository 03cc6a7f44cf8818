package cli

import (
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <atlas.json>",
		Short: "Describe a packed atlas layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, path string) error {
	layout, err := ReadLayoutFile(path)
	if err != nil {
		return err
	}

	cmd.Printf("%s %dx%d padding=%d\n", layout.Image, layout.Width, layout.Height, layout.Padding)
	for _, s := range layout.Sprites {
		cmd.Printf("  %-20s #%-3d %4dx%-4d at (%d,%d)\n",
			s.Name, s.Index, s.Width, s.Height, s.X, s.Y)
	}
	cmd.Printf("  %d sprites, %.1f%% coverage\n", len(layout.Sprites), layout.Coverage()*100)
	return nil
}
