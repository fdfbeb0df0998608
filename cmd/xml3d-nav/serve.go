package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ksons/xml3d-blender-exporter/engine"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/remote"
	"github.com/ksons/xml3d-blender-exporter/internal/config"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
	"github.com/spf13/cobra"
)

var serveFlags config.Flags
var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the navigation controller to browser previews",
	Long: `Start the websocket bridge. Each preview page connects to /ws/navigation,
sends its view and canvas events, and receives view attribute updates and
redraw requests. With --watch the config file is reloaded on change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.Addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.StaticDir, "static", "", "directory with preview page assets")
	serveCmd.Flags().StringVar(&serveFlags.Mode, "mode", "", "default navigation mode")
	serveCmd.Flags().Float64Var(&serveFlags.TickRate, "tick-rate", 0, "redraw ticks per second")
	serveCmd.Flags().BoolVar(&serveFlags.Profiling, "profile", false, "log frame statistics")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the config file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg.Resolve(serveFlags)

	registry := navigation.NewRegistry()
	srv := remote.NewServer(
		remote.WithAddr(cfg.Server.Addr),
		remote.WithStaticDir(cfg.Server.StaticDir),
		remote.WithRegistry(registry),
		remote.WithDescriptor(cfg.Navigation),
	)
	eng := engine.NewEngine(
		engine.WithRegistry(registry),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
	)

	if serveWatch && configPath != "" {
		w, err := config.Watch(configPath, config.DefaultDebounce, func(next config.Config) {
			next.Resolve(serveFlags)
			srv.SetDescriptor(next.Navigation)
			eng.SetTickRate(next.Engine.TickRate)
			if next.Engine.Profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
			log.Init(next.Log.Level)
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go eng.Run()
	defer eng.Quit()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Warn("shutdown failed", "error", err)
		}
	}()

	return srv.Start()
}
