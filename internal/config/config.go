package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/dmitrijs2005/pux2html/internal/rasterize"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Defaults.
const (
	DefaultTemplatePath = "OutputTemplate.in.html"
	DefaultTitle        = "1Password export"
	DefaultPDFTimeout   = 30 * time.Second
)

// Config holds runtime settings for one conversion.
type Config struct {
	InputFile    string
	OutputFile   string
	Verbose      bool
	TemplatePath string
	Title        string
	Format       string
	LogFormat    string
	PDFDPI       int
	ChromePath   string
	NoSandbox    bool
	PDFTimeout   time.Duration
}

// LoadDefaults populates c with defaults. Input and output stay empty.
func (c *Config) LoadDefaults() {
	c.TemplatePath = DefaultTemplatePath
	c.Title = DefaultTitle
	c.Format = FormatHTML
	c.LogFormat = logging.FormatConsole
	c.PDFDPI = rasterize.DefaultDPI
	c.PDFTimeout = DefaultPDFTimeout
}

// DefaultTemplate reports whether the template path is the conventional
// one, in which case a missing file falls back to the built-in template.
func (c *Config) DefaultTemplate() bool {
	return c.TemplatePath == DefaultTemplatePath
}

// Validate checks that the configuration describes a runnable conversion.
// All failures wrap common.ErrUsage.
func (c *Config) Validate() error {
	switch {
	case c.InputFile == "":
		return fmt.Errorf("%w: input file is required (-i)", common.ErrUsage)
	case c.OutputFile == "":
		return fmt.Errorf("%w: output file is required (-o)", common.ErrUsage)
	case samePath(c.InputFile, c.OutputFile):
		return fmt.Errorf("%w: output file would overwrite the input", common.ErrUsage)
	}

	switch c.Format {
	case FormatHTML, FormatPDF:
	default:
		return fmt.Errorf("%w: unknown format %q", common.ErrUsage, c.Format)
	}

	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", common.ErrUsage, c.LogFormat)
	}

	if c.PDFDPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", common.ErrUsage, c.PDFDPI)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
