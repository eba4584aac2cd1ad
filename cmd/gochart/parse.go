package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gochart "github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// newParseCmd creates the parse command.
func (a *App) newParseCmd() *cobra.Command {
	var chartType string

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Show how tabular text is interpreted",
		Long: `Parse tabular text the way render would and print the detected header,
series, rows and skipped lines. "-" reads stdin.

Examples:
  gochart parse sales.csv --type bar
  printf 'A,1\nB,2\n' | gochart parse - --type pie`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := gochart.ParseChartKind(chartType)
			if err != nil {
				return err
			}
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			res, err := gochart.ParseTabular(text, kind)
			if err != nil {
				return err
			}
			logging.NewEvent(a.log.Debug()).
				Add(logging.ChartKind(string(kind))).
				Add(logging.Rows(len(res.Categories))).
				Add(logging.Skipped(len(res.Skipped))).
				Msg("input parsed")
			return a.printParseResult(kind, res)
		},
	}

	cmd.Flags().StringVarP(&chartType, "type", "t", string(gochart.KindBar), "Chart type the input is parsed for")

	return cmd
}

func (a *App) printParseResult(kind gochart.ChartKind, res *gochart.ParseResult) error {
	fmt.Fprintf(a.stdout, "Type: %s\n", kind)
	fmt.Fprintf(a.stdout, "Header: %t\n", res.HeaderDetected)
	fmt.Fprintf(a.stdout, "Series: %s\n", strings.Join(res.SeriesNames(), ", "))
	fmt.Fprintf(a.stdout, "Rows: %d\n", len(res.Categories))

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for i, label := range res.Categories {
		fmt.Fprintf(tw, "  %s", label)
		for _, s := range res.Series {
			fmt.Fprintf(tw, "\t%s", formatValue(s.Values[i]))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintf(a.stdout, "Skipped: %d\n", len(res.Skipped))
		for _, row := range res.Skipped {
			fmt.Fprintf(a.stdout, "  line %d: %s (%s)\n", row.Line, row.Reason, row.Text)
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
