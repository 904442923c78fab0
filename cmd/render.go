package cmd

import (
	"fmt"

	"crosscut/render"
	"crosscut/timeline"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.fcpxml>",
	Short: "Render a sequence to a PNG frame sequence",
	Long: `Render an FCPXML sequence frame by frame. Each frame composites the clips
active at that instant, lowest lane first. Image assets found on disk are
drawn as stills; all other clips are drawn as labelled placeholder cards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("project")
		captions, _ := cmd.Flags().GetString("captions")
		out, _ := cmd.Flags().GetString("out")
		fps, _ := cmd.Flags().GetFloat64("fps")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		from, _ := cmd.Flags().GetFloat64("from")
		to, _ := cmd.Flags().GetFloat64("to")

		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid frame size %dx%d", width, height)
		}

		p, err := loadProject(args[0], name, captions, width, height)
		if err != nil {
			return err
		}
		if to <= 0 {
			to = p.Duration
		}

		player := &render.Player{
			Compositor: render.NewCompositor(p.Timeline, p.clips, width, height, render.WithLogger(logger)),
			FPS:        fps,
			From:       timeline.Time(from),
			To:         timeline.Time(to),
		}
		stats, err := player.WritePNGSequence(cmd.Context(), out)
		if err != nil {
			return err
		}

		fmt.Printf("Rendered %d frames to %s\n", stats.Frames, out)
		fmt.Println(StatusStyle.Render(fmt.Sprintf("lookup avg %v, max %v; total render %v",
			stats.QueryAvg(), stats.QueryMax, stats.RenderAll)))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("project", "p", "", "Project name (defaults to the first project)")
	renderCmd.Flags().String("captions", "", "WebVTT file laid out as a caption track above every lane")
	renderCmd.Flags().StringP("out", "o", "frames", "Output directory")
	renderCmd.Flags().Float64("fps", 24000.0/1001.0, "Frames per second")
	renderCmd.Flags().Int("width", 1280, "Frame width")
	renderCmd.Flags().Int("height", 720, "Frame height")
	renderCmd.Flags().Float64("from", 0, "Start time in seconds")
	renderCmd.Flags().Float64("to", 0, "End time in seconds (defaults to the end of the sequence)")
}
