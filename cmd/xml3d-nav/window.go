package main

import (
	"fmt"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
	"github.com/spf13/cobra"
)

var (
	windowWidth  int
	windowHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window [scene]",
	Short: "Navigate a scene in a native window",
	Long: `Open a window for a scene document and drive its active view with the
mouse and keyboard. The window title shows the camera position; picks with
alt+click intersect the scene's stand-in geometry. Escape closes the window.`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 720, "window height")
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	win, err := window.NewWindow(
		window.WithTitle("xml3d-nav"),
		window.WithWidth(windowWidth),
		window.WithHeight(windowHeight),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	doc, sc, ctrl, err := openScene(args[0], win, cfg.Navigation)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, sc),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
	)
	eng.Registry().Register(ctrl)
	eng.Registry().AttachAll()

	sc.OnFrameDrawn(func(stats common.FrameStats) {
		log.Debug("frame drawn", "objects", stats.Objects, "primitives", stats.Primitives)
	})

	title := ""
	win.SetUpdateCallback(func() {
		next := fmt.Sprintf("%s [%s] %s", doc.Name, ctrl.Mode(), common.FormatVec3(ctrl.Camera().Position()))
		if next != title {
			title = next
			win.SetTitle(title)
		}
	})

	log.Info("window opened", "scene", doc.Name, "view", ctrl.Camera().View().ID(), "mode", ctrl.Mode())
	eng.Run()
	return nil
}
