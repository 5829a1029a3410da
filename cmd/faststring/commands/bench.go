package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/faststring/internal/app"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/ui/style"
)

const ratioColumn = 3

func (c *CLI) newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare faststring with a plain byte slice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, _ := cmd.Flags().GetStringSlice("op")
			sizes, _ := cmd.Flags().GetStringSlice("size")
			save, _ := cmd.Flags().GetBool("save")
			showMetrics, _ := cmd.Flags().GetBool("metrics")
			parallel, _ := cmd.Flags().GetInt("parallel")

			ms, err := c.app.Bench(cmd.Context(), app.BenchOptions{
				ConfigPath:  configPath(cmd),
				Ops:         ops,
				Sizes:       sizes,
				Parallelism: parallel,
				Save:        save,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, renderMeasurements(ms))

			if !showMetrics {
				return nil
			}
			samples, err := c.app.Metrics()
			if err != nil {
				return err
			}
			writeSamples(out, samples)
			return nil
		},
	}
	cmd.Flags().StringSlice("op", nil, "Operations to run (from, clone, push, push_str, remove, shared_read)")
	cmd.Flags().StringSlice("size", nil, "Size classes to run (small, medium, large)")
	cmd.Flags().Bool("save", false, "Merge the results into the configured results file")
	cmd.Flags().Bool("metrics", false, "Print the exported metrics after the results")
	cmd.Flags().IntP("parallel", "p", 0, "Number of scenarios to run at once")
	return cmd
}

func renderMeasurements(ms []domain.Measurement) string {
	rows := make([][]string, len(ms))
	for i, m := range ms {
		rows[i] = []string{
			m.Scenario,
			strconv.FormatFloat(m.BaselineNs, 'f', 1, 64),
			strconv.FormatFloat(m.FastNs, 'f', 1, 64),
			strconv.FormatFloat(m.Ratio, 'f', 2, 64),
			strconv.FormatUint(m.Allocs, 10),
			strconv.FormatUint(m.Copies, 10),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.Border).
		Headers("scenario", "baseline ns/op", "faststring ns/op", "ratio", "buffers", "copies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style.Header
			case col == ratioColumn && row < len(ms):
				return style.Ratio(ms[row].Ratio)
			default:
				return style.Cell
			}
		}).
		String()
}

// writeSamples prints one sample per line in the Prometheus text style.
func writeSamples(w io.Writer, samples []domain.Sample) {
	for _, s := range samples {
		name := s.Name
		if len(s.Labels) > 0 {
			labels := make([]string, 0, len(s.Labels))
			for _, k := range slices.Sorted(maps.Keys(s.Labels)) {
				labels = append(labels, fmt.Sprintf("%s=%q", k, s.Labels[k]))
			}
			name += "{" + strings.Join(labels, ",") + "}"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", name, strconv.FormatFloat(s.Value, 'g', -1, 64))
	}
}
