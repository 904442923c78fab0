package cmd

import (
	"fmt"
	"time"

	"crosscut/fcp"
	"crosscut/timeline"

	"github.com/spf13/cobra"
)

// demoDocument lays out two overlapping clips: A on the spine over [0, 2)
// and B connected on lane 1 over [1, 4).
func demoDocument() *fcp.FCPXML {
	ml := fcp.NewDocument("crosscut demo")
	reg := fcp.NewResourceRegistry(ml, timeline.NewClipRegistry(), nil)
	ids := reg.ReserveIDs(2)
	for i, name := range []string{"A", "B"} {
		reg.RegisterAsset(fcp.Asset{
			ID:       ids[i],
			Name:     name,
			UID:      fcp.GenerateUID(name),
			Start:    "0s",
			HasVideo: "1",
			Format:   "r1",
			Duration: fcp.FormatDuration(10),
		})
	}

	seq, _ := ml.Sequence("")
	seq.Duration = fcp.FormatDuration(4)
	seq.Spine.AssetClips = append(seq.Spine.AssetClips, fcp.AssetClip{
		Ref:      ids[0],
		Offset:   "0s",
		Name:     "A",
		Duration: "2s",
		Connected: fcp.Connected{
			AssetClips: []fcp.AssetClip{
				{Ref: ids[1], Lane: "1", Offset: "1s", Name: "B", Duration: "3s"},
			},
		},
	})
	return ml
}

var demoCmd = &cobra.Command{
	Use:   "demo [filename]",
	Short: "Write a small two-lane FCPXML sequence",
	Long:  `Write a two-lane FCPXML sequence with overlapping clips to try the other commands on.`,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		var filename string
		if output != "" {
			filename = output
		} else if len(args) > 0 {
			filename = args[0]
		} else {
			filename = fmt.Sprintf("crosscut_%d.fcpxml", time.Now().Unix())
		}
		if err := fcp.WriteToFile(demoDocument(), filename); err != nil {
			return err
		}
		fmt.Printf("Generated demo FCPXML: %s\n", filename)
		return nil
	},
}

func init() {
	demoCmd.Flags().StringP("output", "o", "", "Output filename (defaults to crosscut_unixtime.fcpxml)")
}
