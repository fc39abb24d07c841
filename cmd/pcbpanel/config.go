package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/pcbpanel/internal/project"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, back up or restore the application config",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored application config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(appCfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	backup := &cobra.Command{
		Use:   "backup <file>",
		Short: "Write the config and presets to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := project.LoadPresets(project.DefaultPresetPath())
			if err != nil {
				return err
			}
			return project.ExportAllData(args[0], appCfg, presets)
		},
	}

	restore := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the config and presets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), data.Config); err != nil {
				return err
			}
			if err := project.SavePresets(project.DefaultPresetPath(), data.Presets); err != nil {
				return err
			}
			logger.Info("restored backup", "created_at", data.CreatedAt, "presets", len(data.Presets.Presets))
			return nil
		},
	}

	cmd.AddCommand(show, backup, restore)
	return cmd
}
