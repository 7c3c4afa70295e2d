package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dtm2stl/internal/config"
	"github.com/Faultbox/dtm2stl/internal/logger"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the converter configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the configuration currently in effect (defaults, config file and
flags combined) as YAML. Without a path the file is written to the user
config directory, where later runs pick it up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.ConfigDir(), "config.yaml")
			var err error
			if len(args) > 0 {
				path = config.ExpandPath(args[0])
				err = a.cfg.SaveTo(path)
			} else {
				err = a.cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			logger.Sugar.Debugf("Saved config to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
