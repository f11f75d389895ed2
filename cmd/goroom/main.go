package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/philipparndt/goroom/internal/app"
	"github.com/philipparndt/goroom/internal/config"
	"github.com/philipparndt/goroom/version"
	"github.com/spf13/cobra"
)

var flags struct {
	asset  string
	width  int
	height int
	fps    int
}

var rootCmd = &cobra.Command{
	Use:   "goroom",
	Short: "Interactive 3D portfolio room",
	Long: `goroom opens a window showing a 3D room. Drag to orbit the camera,
scroll to zoom, and click on objects to open the portfolio, follow a link
or make them jump and spin.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runViewer,
}

func init() {
	log.SetPrefix("goroom: ")
	log.SetFlags(log.Ltime)

	rootCmd.PersistentFlags().StringVar(&flags.asset, "asset", "", "scene asset (.glb, .gltf or .stl)")
	rootCmd.Flags().IntVar(&flags.width, "width", 0, "initial window width")
	rootCmd.Flags().IntVar(&flags.height, "height", 0, "initial window height")
	rootCmd.Flags().IntVar(&flags.fps, "fps", 0, "target frame rate")
}

// loadConfig reads the environment and applies flags the user set.
// Validation is left to the command since inspect never opens a window.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("asset") {
		cfg.Asset = flags.asset
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = flags.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = flags.height
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = flags.fps
	}
	return cfg, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return app.Run(cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
