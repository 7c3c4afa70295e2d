// dtm2stl converts digital terrain model grids into ASCII STL surface meshes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dtm2stl/internal/config"
	"github.com/Faultbox/dtm2stl/internal/logger"
)

// app carries state shared by all subcommands.
type app struct {
	flags *config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dtm2stl",
		Short: "Convert terrain height grids to STL surface meshes",
		Long: `dtm2stl reads a regular grid of elevation samples (for example an
Ordnance Survey or ESRI ASCII grid) and writes it as a triangulated surface
in ASCII STL format. Each grid cell becomes two facets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			logger.Sugar.Debugf("Config: %+v", cfg)
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	a.flags = config.BindFlags(root.PersistentFlags())
	root.AddCommand(newConvertCmd(a), newInfoCmd(a), newConfigCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
