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

// Clips are never rendered by the inspection commands.
const inspectSize = 16

var regionsCmd = &cobra.Command{
	Use:   "regions <file.fcpxml>",
	Short: "Print the region index of a sequence",
	Long: `Print every region of the index built from an FCPXML sequence: the
half-open interval it covers and the clips active throughout it, as lane:name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("project")
		captions, _ := cmd.Flags().GetString("captions")
		rational, _ := cmd.Flags().GetBool("fcp-time")

		p, err := loadProject(args[0], name, captions, inspectSize, inspectSize)
		if err != nil {
			return err
		}
		ix, err := p.Timeline.Index()
		if err != nil {
			return err
		}

		formatTime := func(t timeline.Time) string {
			if rational {
				return fcp.FormatDuration(float64(t))
			}
			return strconv.FormatFloat(float64(t), 'f', 3, 64)
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(BorderStyle).
			Headers("#", "in", "out", "active").
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return HeaderStyle
				case col == 1 || col == 2:
					return TimeStyle
				}
				return CellStyle
			})
		for i, r := range ix.Regions() {
			tbl.Row(strconv.Itoa(i), formatTime(r.In), formatTime(r.Out), p.describe(r.Active))
		}

		start, end := ix.Span()
		fmt.Println(TitleStyle.Render(args[0]))
		fmt.Println(tbl.Render())
		fmt.Println(StatusStyle.Render(fmt.Sprintf("%d resources, %d tracks, %d cuts, %d regions over [%s, %s), %d with same-track overlap",
			p.resources, p.Timeline.Len(), ix.Cuts(), ix.Len(), formatTime(start), formatTime(end), ix.Overlaps())))
		return nil
	},
}

func init() {
	regionsCmd.Flags().StringP("project", "p", "", "Project name (defaults to the first project)")
	regionsCmd.Flags().String("captions", "", "WebVTT file laid out as a caption track above every lane")
	regionsCmd.Flags().Bool("fcp-time", false, "Print times as FCPXML rational values")
}
