package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-vidview/vidview/pkg/media"
	"github.com/go-vidview/vidview/pkg/player"
)

var infoCmd = &cobra.Command{
	Use:   "info [source]",
	Short: "Probe a video source and print its properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		probe, err := media.ProbeSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("duration    %s (%s)\n", player.FormatTime(probe.Duration.Seconds()), probe.Duration)
		fmt.Printf("dimensions  %dx%d\n", probe.Width, probe.Height)
		fmt.Printf("codec       %s\n", probe.Codec)
		fmt.Printf("frame rate  %.3f fps\n", probe.FrameRate)
		if probe.SizeBytes > 0 {
			fmt.Printf("size        %d bytes\n", probe.SizeBytes)
		}
		if probe.BitRate > 0 {
			fmt.Printf("bit rate    %d b/s\n", probe.BitRate)
		}
		return nil
	},
}
