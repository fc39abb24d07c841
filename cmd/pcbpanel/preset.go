package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/pcbpanel/internal/model"
	"github.com/piwi3910/pcbpanel/internal/project"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage stored panel presets",
	}

	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Store the settings given by flags under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := panelSettings()
			if err != nil {
				return err
			}
			return updatePresets(func(store *model.PresetStore) error {
				store.Add(model.NewPanelPreset(args[0], viper.GetString("description"), settings))
				logger.Info("saved preset", "name", args[0])
				return nil
			})
		},
	}
	addPanelFlags(save)
	save.Flags().String("description", "", "preset description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadPresets(project.DefaultPresetPath())
			if err != nil {
				return err
			}
			for _, p := range store.Presets {
				s := p.Settings
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %dx%d boards, %dx%d tabs (%s)  %s\n",
					p.Name, s.BoardsX, s.BoardsY, s.TabsX, s.TabsY, s.TabMode, p.Description)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePresets(func(store *model.PresetStore) error {
				p := store.FindByName(args[0])
				if p == nil {
					return fmt.Errorf("unknown preset %q", args[0])
				}
				store.Remove(p.ID)
				return nil
			})
		},
	}

	exp := &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write one preset to a file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadPresets(project.DefaultPresetPath())
			if err != nil {
				return err
			}
			p := store.FindByName(args[0])
			if p == nil {
				return fmt.Errorf("unknown preset %q", args[0])
			}
			return project.ExportPreset(args[1], *p)
		},
	}

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Add a shared preset to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportPreset(args[0])
			if err != nil {
				return err
			}
			return updatePresets(func(store *model.PresetStore) error {
				store.Add(p)
				logger.Info("imported preset", "name", p.Name)
				return nil
			})
		},
	}

	cmd.AddCommand(save, list, remove, exp, imp)
	return cmd
}

func updatePresets(update func(*model.PresetStore) error) error {
	path := project.DefaultPresetPath()
	store, err := project.LoadPresets(path)
	if err != nil {
		return err
	}
	if err := update(&store); err != nil {
		return err
	}
	return project.SavePresets(path, store)
}
