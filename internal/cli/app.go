package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/archive"
	"github.com/dmitrijs2005/pux2html/internal/buildinfo"
	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/config"
	"github.com/dmitrijs2005/pux2html/internal/extract"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/dmitrijs2005/pux2html/internal/pdfexport"
	"github.com/dmitrijs2005/pux2html/internal/rasterize"
	"github.com/dmitrijs2005/pux2html/internal/render"
)

// Printer turns a rendered HTML document into a PDF file.
type Printer interface {
	WriteFile(ctx context.Context, path string, html []byte) error
	Close() error
}

// PrinterFactory starts a Printer for one run.
type PrinterFactory func(ctx context.Context, cfg *config.Config, log logging.Logger) (Printer, error)

// ChromePrinter starts a headless Chrome through pdfexport.
func ChromePrinter(ctx context.Context, cfg *config.Config, log logging.Logger) (Printer, error) {
	c, err := pdfexport.New(ctx,
		pdfexport.WithChromePath(cfg.ChromePath),
		pdfexport.WithNoSandbox(cfg.NoSandbox),
		pdfexport.WithTimeout(cfg.PDFTimeout),
		pdfexport.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// App runs a single conversion.
type App struct {
	cfg        *config.Config
	log        logging.Logger
	errOut     io.Writer
	color      bool
	rasterizer rasterize.Rasterizer
	printer    PrinterFactory
	now        func() time.Time
}

// AppOption configures an App.
type AppOption func(*App)

// WithErrorOutput sets where build info and the verbose warning go.
func WithErrorOutput(w io.Writer, color bool) AppOption {
	return func(a *App) {
		a.errOut = w
		a.color = color
	}
}

// WithRasterizer replaces the MuPDF rasterizer.
func WithRasterizer(r rasterize.Rasterizer) AppOption {
	return func(a *App) { a.rasterizer = r }
}

// WithPrinter replaces the Chrome PDF printer.
func WithPrinter(f PrinterFactory) AppOption {
	return func(a *App) { a.printer = f }
}

// WithClock sets the time source used by the renderer.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// NewApp returns an App for cfg. cfg must already be validated.
func NewApp(cfg *config.Config, log logging.Logger, opts ...AppOption) *App {
	a := &App{
		cfg:     cfg,
		log:     log,
		errOut:  os.Stderr,
		printer: ChromePrinter,
		now:     time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	if a.rasterizer == nil {
		a.rasterizer = rasterize.NewFitz(float64(cfg.PDFDPI))
	}
	return a
}

// Run converts the configured input into the configured output and returns
// the extraction summary.
func (a *App) Run(ctx context.Context) (*extract.Summary, error) {
	if a.cfg.Verbose {
		buildinfo.PrintBuildData(a.errOut)
		a.log.Debug(ctx, "reading archive", "file", a.cfg.InputFile)
	}

	arc, err := archive.Load(a.cfg.InputFile)
	if err != nil {
		return nil, err
	}
	a.log.Debug(ctx, "archive loaded", "attachments", arc.Attachments.Len())

	ex := extract.New(
		extract.WithLogger(a.log),
		extract.WithRasterizer(a.rasterizer),
		extract.WithVerbose(a.cfg.Verbose),
		extract.WithWarningOutput(a.errOut, a.color),
	)
	res, err := ex.Extract(ctx, arc.Manifest, arc.Attachments)
	if err != nil {
		return nil, err
	}

	count := res.Report.RecordCount()
	a.log.Info(ctx, fmt.Sprintf("%d records imported", count), "folders", res.Report.Len())
	if a.cfg.Verbose {
		a.dumpRecords(ctx, res)
	}
	a.logSummary(ctx, res)

	a.log.Debug(ctx, "writing report", "file", a.cfg.OutputFile, "format", a.cfg.Format)
	if err := a.write(ctx, res); err != nil {
		return nil, err
	}
	a.log.Info(ctx, fmt.Sprintf("%d records saved to %s", count, a.cfg.OutputFile))

	return &res.Summary, nil
}

func (a *App) write(ctx context.Context, res *extract.Result) error {
	r := render.New(
		render.WithTemplateFile(a.cfg.TemplatePath, a.cfg.DefaultTemplate()),
		render.WithLogger(a.log),
		render.WithClock(a.now),
	)

	if a.cfg.Format != config.FormatPDF {
		return r.WriteFile(ctx, a.cfg.OutputFile, res.Report, a.cfg.Title)
	}

	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, res.Report, a.cfg.Title); err != nil {
		return err
	}

	p, err := a.printer(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.WriteFile(ctx, a.cfg.OutputFile, buf.Bytes())
}

func (a *App) dumpRecords(ctx context.Context, res *extract.Result) {
	for _, f := range res.Report.Folders() {
		for _, rec := range f.Records {
			a.log.Debug(ctx, "record",
				"folder", f.Name,
				"name", rec.Name,
				"url", rec.URL,
				"username", rec.Username,
				"favorite", rec.Favorite,
				"fields", len(rec.OtherFields),
			)
		}
	}
}

func (a *App) logSummary(ctx context.Context, res *extract.Result) {
	s := res.Summary
	a.log.Info(ctx, "extraction summary",
		"accounts", s.Accounts,
		"folders", s.Folders,
		"items", s.Items,
		"records", s.Records,
		"fields", s.Fields,
		"attachments", s.Attachments,
		"converted_pdfs", s.ConvertedPDFs,
	)

	if s.SkippedItems == 0 && s.SkippedFields == 0 {
		return
	}
	a.log.Warn(ctx, "some content was skipped",
		"skipped_items", s.SkippedItems,
		"skipped_fields", s.SkippedFields,
		"empty_overview", res.Count(common.ErrEmptyOverview),
		"malformed_item", res.Count(common.ErrMalformedItem),
		"missing_attachment", res.Count(common.ErrAttachmentMissing),
		"unconvertible_attachment", res.Count(common.ErrAttachmentConvert),
		"unrecognized_field", res.Count(common.ErrUnrecognizedFieldShape),
	)
}
