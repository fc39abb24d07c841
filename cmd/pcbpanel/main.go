// pcbpanel lays out printed circuit boards in a framed panel with
// mouse-bite breakaway tabs and writes fabrication outputs.
//
// Build:
//   go build -o pcbpanel ./cmd/pcbpanel
//
// Usage:
//   pcbpanel build board.dxf --boards-x 3 --boards-y 2 --format dxf,drl,pdf
//   pcbpanel batch jobs.csv
//   pcbpanel preview board.dxf

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/pcbpanel/internal/model"
	"github.com/piwi3910/pcbpanel/internal/project"
)

var (
	cfgFile string
	verbose bool
	logger  = slog.New(slog.DiscardHandler)
	appCfg  model.AppConfig
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pcbpanel",
		Short:         "Panelize PCB outlines with breakaway tabs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newBuildCmd(), newBatchCmd(), newPreviewCmd(), newPresetCmd(), newConfigCmd())
	return root
}

// initConfig sets up logging and the configuration layers. Precedence is
// flags, then PCBPANEL_ environment variables, then the --config file, then
// the stored application config.
func initConfig(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	appCfg, err = project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}

	viper.SetEnvPrefix("PCBPANEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return viper.BindPFlags(cmd.Flags())
}

// saveAppConfig stores the application config, logging failures only.
func saveAppConfig() {
	if err := project.SaveAppConfig(project.DefaultConfigPath(), appCfg); err != nil {
		logger.Warn("failed to save app config", "err", err)
	}
}
