// Package ui provides the panel preview window.
package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/export"
	"github.com/piwi3910/pcbpanel/internal/importer"
	"github.com/piwi3910/pcbpanel/internal/model"
	"github.com/piwi3910/pcbpanel/internal/ui/widgets"
)

// App holds the preview window state.
type App struct {
	window   fyne.Window
	config   model.AppConfig
	settings model.PanelSettings
	logger   *slog.Logger

	doc    *board.Document
	result *engine.Result

	resultContainer *fyne.Container
	status          *widget.Label
}

func NewApp(window fyne.Window, config model.AppConfig, settings model.PanelSettings, logger *slog.Logger) *App {
	return &App{
		window:   window,
		config:   config,
		settings: settings,
		logger:   logger,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Board Outline...", a.openBoard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportTo("panel.dxf", func(path string) error { return export.ExportDXF(path, a.doc) })
		}),
		fyne.NewMenuItem("Export Drill File...", func() {
			a.exportTo("panel.drl", func(path string) error { return export.ExportDrill(path, a.doc) })
		}),
		fyne.NewMenuItem("Export PDF...", func() {
			a.exportTo("panel.pdf", func(path string) error {
				return export.ExportPDF(path, a.doc, *a.result, a.settings)
			})
		}),
		fyne.NewMenuItem("Export SVG...", func() {
			a.exportTo("panel.svg", func(path string) error { return export.ExportSVG(path, a.doc) })
		}),
		fyne.NewMenuItem("Export Report...", func() {
			a.exportTo("panel.xlsx", func(path string) error {
				return export.ExportReport(path, a.doc, *a.result, a.settings)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// Build returns the window content: a toolbar above the panel view.
func (a *App) Build() fyne.CanvasObject {
	a.resultContainer = container.NewStack()
	a.status = widget.NewLabel("")

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open board outline", a.openBoard),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Rebuild panel", func() {
			if a.settings.Source == "" {
				return
			}
			if err := a.LoadBoard(a.settings.Source); err != nil {
				dialog.ShowError(err, a.window)
			}
		}),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Export PDF drawing", func() {
			a.exportTo("panel.pdf", func(path string) error {
				return export.ExportPDF(path, a.doc, *a.result, a.settings)
			})
		}),
		a.status,
	)

	a.refreshResults()
	return container.NewBorder(toolbar, nil, nil, nil, a.resultContainer)
}

// LoadBoard imports a board outline and lays out the panel with the current
// settings.
func (a *App) LoadBoard(path string) error {
	imp := importer.ImportDXF(path, a.config.DXFEdgeWidth)
	for _, w := range imp.Warnings {
		a.logger.Warn("import warning", "path", path, "warning", w)
	}
	if len(imp.Errors) > 0 {
		return fmt.Errorf("import %s: %s", path, strings.Join(imp.Errors, "; "))
	}

	settings := a.settings
	settings.Source = path
	p := engine.New(settings, engine.WithLogger(a.logger))
	doc := board.NewDocument()
	res, err := p.Layout(doc, imp.Board)
	if err != nil {
		return err
	}

	a.settings = settings
	a.doc = doc
	a.result = &res
	a.config.AddRecentSource(path)
	a.refreshResults()
	return nil
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderPanelResult(a.doc, a.result))
	a.resultContainer.Refresh()
	if a.result != nil {
		a.status.SetText(fmt.Sprintf("%s: %d tabs placed, %d dropped",
			filepath.Base(a.settings.Source), a.result.TabsPlaced, a.result.TabsDropped))
	}
}

func (a *App) openBoard() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.LoadBoard(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

func (a *App) exportTo(defaultName string, write func(path string) error) {
	if a.doc == nil || a.result == nil {
		dialog.ShowInformation("No panel", "Open a board outline before exporting.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported panel", "path", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// Config returns the application config, including boards opened in this
// session.
func (a *App) Config() model.AppConfig {
	return a.config
}
