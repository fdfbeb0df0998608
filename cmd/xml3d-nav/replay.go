package main

import (
	"fmt"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/replay"
	"github.com/ksons/xml3d-blender-exporter/engine/scene"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [scene] [script]",
	Short: "Replay scripted input against a scene",
	Long: `Load a scene document (YAML or TOML) and play a YAML input script against
the navigation controller of its active view. Expect steps in the script make
the command fail when the camera does not end up where the script says.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := replay.Load(args[1])
	if err != nil {
		return err
	}

	width := common.Coalesce(script.Width, scene.DefaultWidth)
	height := common.Coalesce(script.Height, scene.DefaultHeight)
	surface := window.NewHeadlessSurface(width, height)

	doc, sc, ctrl, err := openScene(args[0], surface, cfg.Navigation)
	if err != nil {
		return err
	}

	res, err := replay.NewPlayer(ctrl).Run(script)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scene: %s (view %s)\n", doc.Name, ctrl.Camera().View().ID())
	fmt.Fprintf(out, "Script: %s\n", script.Name)
	fmt.Fprintf(out, "  Steps: %d/%d\n", res.Steps, len(script.Steps))
	fmt.Fprintf(out, "  Events: %d (%d consumed)\n", res.Events, res.Consumed)
	fmt.Fprintf(out, "  Redraws: %d\n", sc.Redraws())
	fmt.Fprintf(out, "  Position: %s\n", common.FormatVec3(res.Position))
	fmt.Fprintf(out, "  Direction: %s\n", common.FormatVec3(res.Direction))
	fmt.Fprintf(out, "  Mode: %s\n", ctrl.Mode())

	if err != nil {
		return &exitError{code: 2, err: err}
	}
	return nil
}
