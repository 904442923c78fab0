package cmd

import (
	"fmt"
	"strconv"

	"crosscut/fcp"
	"crosscut/timeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// parseTime accepts plain seconds ("1.5") or FCPXML time ("36036/24000s").
func parseTime(s string) (timeline.Time, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return timeline.Time(secs), nil
	}
	secs, err := fcp.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return timeline.Time(secs), nil
}

var queryCmd = &cobra.Command{
	Use:   "query <file.fcpxml> <time>...",
	Short: "List the clips active at the given times",
	Long: `List the clips active at each given time, with the local time each clip
would be sampled at. Times are seconds or FCPXML rational values.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("project")
		captions, _ := cmd.Flags().GetString("captions")

		times := make([]timeline.Time, 0, len(args)-1)
		for _, arg := range args[1:] {
			t, err := parseTime(arg)
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", arg, err)
			}
			times = append(times, t)
		}

		p, err := loadProject(args[0], name, captions, inspectSize, inspectSize)
		if err != nil {
			return err
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(BorderStyle).
			Headers("time", "lane", "clip", "local").
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return HeaderStyle
				case col == 0 || col == 3:
					return TimeStyle
				}
				return CellStyle
			})
		for _, t := range times {
			active, err := p.Timeline.CutsAt(t)
			if err != nil {
				return err
			}
			at := strconv.FormatFloat(float64(t), 'f', 3, 64)
			if len(active) == 0 {
				tbl.Row(at, "", p.describe(nil), "")
				continue
			}
			for _, a := range active {
				local := a.Cut.LocalTimeAt(t)
				tbl.Row(at, p.lane(a), p.name(a), strconv.FormatFloat(float64(local), 'f', 3, 64))
			}
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

func init() {
	queryCmd.Flags().StringP("project", "p", "", "Project name (defaults to the first project)")
	queryCmd.Flags().String("captions", "", "WebVTT file laid out as a caption track above every lane")
}
