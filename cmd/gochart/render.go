package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	gochart "github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// renderOptions holds options for the render command.
type renderOptions struct {
	input      string
	chartType  string
	docPath    string
	styles     []string
	colors     []string
	title      string
	caption    string
	background string
	out        string
	format     string
	width      int
	html       bool
	watch      bool
}

// newRenderCmd creates the render command.
func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a chart to an image or HTML page",
		Long: `Render a chart from tabular text, a chart document, or both.

The input holds comma-separated rows ("label,value[,value...]"); "-" reads
stdin. Without input the chart type's sample data is drawn. Settings are
applied in order: document, --type, input, --style, --color, text flags.

Examples:
  # Bar chart from a CSV file
  gochart render sales.csv --type bar --out sales.png

  # Stacked horizontal bars with a custom second series color
  gochart render sales.csv --type bar --style bar_mode=stacked \
    --style orientation=horizontal --color base:1=#AB0000

  # Chart document to HTML, re-rendered on every save
  gochart render --doc chart.yaml --html --out chart.html --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			if opts.watch {
				return a.watchRender(cmd.Context(), opts)
			}
			return a.render(cmd.Context(), opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.chartType, "type", "t", "", "Chart type: pie, donut, bar, line, pictogram")
	cmd.Flags().StringVarP(&opts.docPath, "doc", "d", "", "Path to a YAML chart document")
	cmd.Flags().StringArrayVarP(&opts.styles, "style", "s", nil, "Style parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.colors, "color", "c", nil, "Color as target=#RRGGBB, e.g. category:0:2=#FF0000 (repeatable)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Chart title")
	cmd.Flags().StringVar(&opts.caption, "caption", "", "Chart caption")
	cmd.Flags().StringVar(&opts.background, "background", "", "Background: white, transparent, rainbow or #RRGGBB")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", `Output path, "-" for stdout (default chartflam-<type>-<date>.<ext>)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Image format: png or jpeg (default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Image width in pixels (default from config)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Write an interactive HTML page instead of an image")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever the input or document changes")

	return cmd
}

// render builds the chart once and writes it. fonts may be shared across
// watch iterations; nil creates a cache from the configured directories.
func (a *App) render(ctx context.Context, opts *renderOptions, fonts *gochart.FontCache) error {
	start := time.Now()
	if fonts == nil {
		fonts = gochart.NewFontCache(a.cfg.Render.FontDirs...)
	}
	engine, err := a.newEngine(fonts)
	if err != nil {
		return err
	}
	if err := a.configure(engine, opts); err != nil {
		return err
	}

	exportOpts, err := a.exportOptions(opts)
	if err != nil {
		return err
	}
	exportOpts.FontCache = fonts

	path := opts.out
	if path == "" {
		ext := exportOpts.Format.Extension()
		name := gochart.ExportFileName(engine.Kind(), time.Now(), exportOpts.Format)
		if opts.html {
			name = strings.TrimSuffix(name, "."+ext) + ".html"
		}
		path = name
	}

	// Encode into memory first so a failed render never truncates the
	// previous output.
	var buf bytes.Buffer
	var exportErr error
	if opts.html {
		exportErr = engine.ExportHTML(&buf)
	} else {
		exportErr = engine.ExportImage(ctx, &buf, exportOpts)
	}
	if buf.Len() == 0 {
		if exportErr == nil {
			exportErr = errors.New("renderer produced no output")
		}
		return exportErr
	}

	if err := a.writeOutput(path, buf.Bytes()); err != nil {
		return err
	}
	logging.NewEvent(a.log.Info()).
		Add(logging.ChartKind(string(engine.Kind()))).
		Add(logging.Path(path)).
		Add(logging.Duration(time.Since(start))).
		Msg("chart written")

	if exportErr != nil {
		fmt.Fprintf(a.stderr, "warning: %v\n", exportErr)
	}
	return nil
}

// configure applies the document, chart type, input data, styles, colors
// and text flags to engine in that order.
func (a *App) configure(engine *gochart.Engine, opts *renderOptions) error {
	if opts.docPath != "" {
		doc, err := gochart.LoadDocumentFile(opts.docPath)
		if err != nil {
			return err
		}
		if err := doc.Apply(engine); err != nil {
			return fmt.Errorf("apply %s: %w", opts.docPath, err)
		}
	}

	if opts.chartType != "" {
		kind, err := gochart.ParseChartKind(opts.chartType)
		if err != nil {
			return err
		}
		if _, err := engine.SetChartType(kind); err != nil {
			return err
		}
	}

	if opts.input != "" {
		text, err := a.readInput(opts.input)
		if err != nil {
			return err
		}
		res, err := engine.IngestTabularText(text)
		if err != nil {
			return err
		}
		if res != nil {
			a.reportSkipped(res.Skipped)
		}
	}

	for _, kv := range opts.styles {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--style %q: want name=value", kv)
		}
		if err := engine.SetStyleParameter(gochart.StyleParam(strings.TrimSpace(name)), value); err != nil {
			return fmt.Errorf("--style %s: %w", name, err)
		}
	}

	for _, kv := range opts.colors {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--color %q: want target=#RRGGBB", kv)
		}
		target, err := gochart.ParseColorTarget(name)
		if err != nil {
			return err
		}
		if err := engine.SetColor(target, value); err != nil {
			return fmt.Errorf("--color %s: %w", name, err)
		}
	}

	if opts.title != "" {
		if err := engine.SetTitle(opts.title); err != nil {
			return err
		}
	}
	if opts.caption != "" {
		if err := engine.SetCaption(opts.caption); err != nil {
			return err
		}
	}
	if opts.background != "" {
		if err := engine.SetBackground(opts.background); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) reportSkipped(rows []gochart.SkippedRow) {
	for _, row := range rows {
		fmt.Fprintf(a.stderr, "skipped line %d (%s): %s\n", row.Line, row.Text, row.Reason)
	}
}

// exportOptions merges command flags over the configured defaults.
func (a *App) exportOptions(opts *renderOptions) (gochart.ExportOptions, error) {
	out := gochart.DefaultExportOptions()
	out.Width = a.cfg.Render.Width
	out.JPEGQuality = a.cfg.Render.JPEGQuality
	out.FontDirs = a.cfg.Render.FontDirs

	format := a.cfg.Render.Format
	if opts.format != "" {
		format = opts.format
	} else if opts.out != "" && opts.out != "-" && filepath.Ext(opts.out) != "" && !opts.html {
		format = filepath.Ext(opts.out)
	}
	f, err := gochart.ParseImageFormat(format)
	if err != nil {
		return out, err
	}
	out.Format = f

	if opts.width > 0 {
		out.Width = opts.width
	}
	return out, nil
}

func (a *App) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// watchRender renders once, then again after every write to the input
// file or chart document, until the context is cancelled. Render errors
// while watching are reported and do not stop the watch.
func (a *App) watchRender(ctx context.Context, opts *renderOptions) error {
	var files []string
	for _, p := range []string{opts.input, opts.docPath} {
		if p != "" && p != "-" {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			files = append(files, abs)
		}
	}
	if len(files) == 0 {
		return errors.New("--watch needs an input file or --doc")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories so editors that replace files on save are seen.
	dirs := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch path: %w", err)
		}
		dirs[dir] = true
	}

	fonts := gochart.NewFontCache(a.cfg.Render.FontDirs...)
	if err := a.render(ctx, opts, fonts); err != nil {
		fmt.Fprintf(a.stderr, "render failed: %v\n", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !watched(files, event.Name) {
				continue
			}
			logging.NewEvent(a.log.Debug()).Add(logging.Path(event.Name)).Msg("change detected")
			if err := a.render(ctx, opts, fonts); err != nil {
				fmt.Fprintf(a.stderr, "render failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.NewEvent(a.log.Warn()).Add(logging.ErrorField(err)).Msg("watch error")
		}
	}
}

func watched(files []string, name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, f := range files {
		if f == abs {
			return true
		}
	}
	return false
}
