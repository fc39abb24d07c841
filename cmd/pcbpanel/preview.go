package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/pcbpanel/internal/ui"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [board.dxf]",
		Short: "Show the panel in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := panelSettings()
			if err != nil {
				return err
			}
			appCfg.DXFEdgeWidth = edgeWidth()

			application := app.NewWithID("com.piwi3910.pcbpanel")
			application.Settings().SetTheme(ui.NewPanelTheme(viper.GetString("theme")))
			window := application.NewWindow("pcbpanel")

			appUI := ui.NewApp(window, appCfg, settings, logger)
			appUI.SetupMenus()
			window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
			window.Resize(fyne.NewSize(1000, 700))
			window.CenterOnScreen()

			if len(args) == 1 {
				if err := appUI.LoadBoard(args[0]); err != nil {
					dialog.ShowError(err, window)
				}
			}
			window.ShowAndRun()

			appCfg.RecentSources = appUI.Config().RecentSources
			saveAppConfig()
			return nil
		},
	}
	addPanelFlags(cmd)
	cmd.Flags().String("theme", "system", "window theme: light, dark or system")
	return cmd
}
