package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/faststring/internal/app"
	"go.trai.ch/faststring/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run random command sequences against a plain string model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeds, _ := cmd.Flags().GetInt("seeds")
			commands, _ := cmd.Flags().GetInt("commands")
			seed, _ := cmd.Flags().GetUint64("seed")

			report, err := c.app.Check(cmd.Context(), app.CheckOptions{
				ConfigPath: configPath(cmd),
				Seeds:      seeds,
				Commands:   commands,
				Seed:       seed,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d sequences, %d commands, %d clones, %d removals\n",
				style.Check, report.Seeds, report.Commands, report.Clones, report.Removals)
			return nil
		},
	}
	cmd.Flags().Int("seeds", 0, "Number of command sequences (default from config)")
	cmd.Flags().Int("commands", 0, "Commands per sequence (default from config)")
	cmd.Flags().Uint64("seed", 0, "Base random seed (default from config)")
	return cmd
}
