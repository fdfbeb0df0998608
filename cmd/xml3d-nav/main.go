package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ksons/xml3d-blender-exporter/internal/config"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

// defaultConfigPath is read when it exists and --config is not given.
const defaultConfigPath = "xml3d-nav.toml"

var (
	configPath string
	logLevel   string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xml3d-nav",
	Short: "Camera navigation for XML3D scene previews",
	Long: `xml3d-nav drives the camera of exported XML3D scenes: it serves the
navigation controller to browser previews over a websocket, replays scripted
input against scene files and opens scenes in a native window.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+defaultConfigPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig reads the config file, applies the global flags and initializes logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.Default()

	path := configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		configPath = path
	}

	cfg.Resolve(config.Flags{LogLevel: logLevel})
	log.Init(cfg.Log.Level)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries a process exit code for failures already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
