// Package pdfexport prints a rendered HTML report to PDF with a headless
// Chrome driven over the DevTools protocol.
package pdfexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/filex"
	"github.com/dmitrijs2005/pux2html/internal/logging"
)

// DefaultTimeout bounds a single print.
const DefaultTimeout = 30 * time.Second

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

// ErrClosed is returned when a Converter is used after Close.
var ErrClosed = errors.New("pdf converter is closed")

type config struct {
	chromePath string
	noSandbox  bool
	timeout    time.Duration
	log        logging.Logger
}

// Option configures a Converter.
type Option func(*config)

// WithChromePath sets the Chrome or Chromium executable. Standard locations
// are searched when empty.
func WithChromePath(path string) Option {
	return func(c *config) { c.chromePath = path }
}

// WithNoSandbox disables the Chrome sandbox, which is needed when running as
// root.
func WithNoSandbox(v bool) Option {
	return func(c *config) { c.noSandbox = v }
}

// WithTimeout sets the per-print timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.log = l }
}

// Converter owns one browser process and reuses it for every print.
// It is safe for concurrent use.
type Converter struct {
	cfg           config
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// New starts the browser. Call Close to stop it.
func New(ctx context.Context, opts ...Option) (*Converter, error) {
	cfg := config{timeout: DefaultTimeout, log: logging.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-first-run", true),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: starting browser: %v", common.ErrRender, err)
	}
	cfg.log.Debug(ctx, "browser started", "chrome", cfg.chromePath, "no_sandbox", cfg.noSandbox)

	return &Converter{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close stops the browser. It is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}

// PrintHTML loads html in a fresh tab and returns the printed PDF.
func (c *Converter) PrintHTML(ctx context.Context, html []byte) ([]byte, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "pux2html-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.Write(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRender, err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	return c.print(ctx, "file://"+filepath.ToSlash(abs))
}

// WriteFile prints html and stores the PDF at path.
func (c *Converter) WriteFile(ctx context.Context, path string, html []byte) error {
	pdf, err := c.PrintHTML(ctx, html)
	if err != nil {
		return err
	}
	if err := filex.WriteFile(path, pdf); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	return nil
}

func (c *Converter) print(ctx context.Context, target string) ([]byte, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, c.cfg.timeout)
		defer cancel()
	}

	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: printing pdf: %v", common.ErrRender, err)
	}
	c.cfg.log.Debug(ctx, "pdf printed", "bytes", len(buf))
	return buf, nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
