package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/export"
	"github.com/piwi3910/pcbpanel/internal/importer"
	"github.com/piwi3910/pcbpanel/internal/model"
	"github.com/piwi3910/pcbpanel/internal/project"
)

type writer func(path string, doc *board.Document, res engine.Result, s model.PanelSettings) error

// formats maps an output format to its file extension and writer.
var formats = map[string]struct {
	ext   string
	write writer
}{
	"dxf": {".dxf", func(path string, doc *board.Document, _ engine.Result, _ model.PanelSettings) error {
		return export.ExportDXF(path, doc)
	}},
	"drl": {".drl", func(path string, doc *board.Document, _ engine.Result, _ model.PanelSettings) error {
		return export.ExportDrill(path, doc)
	}},
	"pdf": {".pdf", export.ExportPDF},
	"svg": {".svg", func(path string, doc *board.Document, _ engine.Result, _ model.PanelSettings) error {
		return export.ExportSVG(path, doc)
	}},
	"xlsx": {".xlsx", export.ExportReport},
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <board.dxf>",
		Short: "Lay out a panel and write the requested outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := panelSettings()
			if err != nil {
				return err
			}
			settings.Source = args[0]

			out := viper.GetString("out")
			if out == "" {
				out = defaultOutput(settings.Source, "")
			}
			if err := buildPanel(settings, out, outputFormats()); err != nil {
				return err
			}

			appCfg.AddRecentSource(settings.Source)
			saveAppConfig()
			if path := viper.GetString("save-settings"); path != "" {
				return project.SaveSettings(path, settings)
			}
			return nil
		},
	}
	addPanelFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "output base path, extensions are added per format")
	cmd.Flags().String("save-settings", "", "write the effective settings to this JSON file")
	return cmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <jobs.csv|jobs.xlsx>",
		Short: "Build every panel listed in a CSV or Excel sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := panelSettings()
			if err != nil {
				return err
			}

			var jobs importer.JobResult
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".xlsx", ".xlsm":
				jobs = importer.ImportJobsExcel(args[0], base)
			default:
				jobs = importer.ImportJobsCSV(args[0], base)
			}
			for _, w := range jobs.Warnings {
				logger.Warn("job sheet warning", "warning", w)
			}
			for _, e := range jobs.Errors {
				logger.Error("job sheet error", "error", e)
			}
			if len(jobs.Jobs) == 0 {
				return fmt.Errorf("no jobs to build in %s", args[0])
			}

			fmts := outputFormats()
			var errs []error
			for _, job := range jobs.Jobs {
				out := job.Output
				if out == "" {
					out = defaultOutput(job.Settings.Source, job.Name)
				}
				if err := buildPanel(job.Settings, out, fmts); err != nil {
					logger.Error("job failed", "job", job.Name, "err", err)
					errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
					continue
				}
				appCfg.AddRecentSource(job.Settings.Source)
			}
			saveAppConfig()

			logger.Info("batch finished", "jobs", len(jobs.Jobs), "failed", len(errs))
			return errors.Join(errs...)
		},
	}
	addPanelFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("format", nil, "output formats: dxf, drl, pdf, svg, xlsx (default from app config)")
}

func outputFormats() []string {
	if f := viper.GetStringSlice("format"); len(f) > 0 {
		return f
	}
	return appCfg.OutputFormats
}

// defaultOutput places outputs next to the source board.
func defaultOutput(source, name string) string {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	return filepath.Join(filepath.Dir(source), name+"-panel")
}

// buildPanel imports the source board, lays out the panel and writes every
// requested format plus a JSON manifest to out.<ext>.
func buildPanel(settings model.PanelSettings, out string, fmts []string) error {
	for _, f := range fmts {
		if _, ok := formats[f]; !ok {
			return fmt.Errorf("unknown output format %q", f)
		}
	}

	imp := importer.ImportDXF(settings.Source, edgeWidth())
	for _, w := range imp.Warnings {
		logger.Warn("import warning", "source", settings.Source, "warning", w)
	}
	if len(imp.Errors) > 0 {
		return fmt.Errorf("import %s: %s", settings.Source, strings.Join(imp.Errors, "; "))
	}

	p := engine.New(settings, engine.WithLogger(logger))
	doc := board.NewDocument()
	res, err := p.Layout(doc, imp.Board)
	if err != nil {
		return err
	}
	logger.Info("panel laid out",
		"source", settings.Source,
		"width_mm", res.Frame.W.MM(),
		"height_mm", res.Frame.H.MM(),
		"tabs", res.TabsPlaced,
		"dropped", res.TabsDropped,
	)

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	manifest := project.Manifest{Settings: settings, Result: res}
	for _, f := range fmts {
		format := formats[f]
		path := out + format.ext
		if err := format.write(path, doc, res, settings); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
		logger.Debug("wrote output", "format", f, "path", path)
		manifest.Outputs = append(manifest.Outputs, filepath.Base(path))
	}
	return project.SaveManifest(out+".json", manifest)
}
