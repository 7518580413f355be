package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig     = "config"
	FlagInput      = "ifile"
	FlagOutput     = "ofile"
	FlagVerbose    = "verbose"
	FlagTemplate   = "template"
	FlagTitle      = "title"
	FlagFormat     = "format"
	FlagLogFormat  = "log-format"
	FlagDPI        = "dpi"
	FlagChromePath = "chrome-path"
	FlagNoSandbox  = "no-sandbox"
	FlagPDFTimeout = "pdf-timeout"
)

// RegisterFlags binds the configuration flags on fs to the fields of dst.
// dst should hold defaults so that usage text shows them. The -c/--config
// flag is not registered here.
func RegisterFlags(fs *pflag.FlagSet, dst *Config) {
	fs.StringVarP(&dst.InputFile, FlagInput, "i", dst.InputFile, "1Password export (.1pux) to read")
	fs.StringVarP(&dst.OutputFile, FlagOutput, "o", dst.OutputFile, "report file to write")
	fs.BoolVarP(&dst.Verbose, FlagVerbose, "v", dst.Verbose, "debug logging and raw item dumps (prints secrets)")
	fs.StringVarP(&dst.TemplatePath, FlagTemplate, "t", dst.TemplatePath, "HTML template file")
	fs.StringVar(&dst.Title, FlagTitle, dst.Title, "report title")
	fs.StringVarP(&dst.Format, FlagFormat, "f", dst.Format, "output format: html or pdf")
	fs.StringVar(&dst.LogFormat, FlagLogFormat, dst.LogFormat, "log format: console, text or json")
	fs.IntVar(&dst.PDFDPI, FlagDPI, dst.PDFDPI, "resolution for PDF attachment previews")
	fs.StringVar(&dst.ChromePath, FlagChromePath, dst.ChromePath, "Chrome executable for --format pdf")
	fs.BoolVar(&dst.NoSandbox, FlagNoSandbox, dst.NoSandbox, "disable the Chrome sandbox")
	fs.DurationVar(&dst.PDFTimeout, FlagPDFTimeout, dst.PDFTimeout, "timeout for printing the PDF")
}

var overlays = map[string]func(dst, src *Config){
	FlagInput:      func(d, s *Config) { d.InputFile = s.InputFile },
	FlagOutput:     func(d, s *Config) { d.OutputFile = s.OutputFile },
	FlagVerbose:    func(d, s *Config) { d.Verbose = s.Verbose },
	FlagTemplate:   func(d, s *Config) { d.TemplatePath = s.TemplatePath },
	FlagTitle:      func(d, s *Config) { d.Title = s.Title },
	FlagFormat:     func(d, s *Config) { d.Format = s.Format },
	FlagLogFormat:  func(d, s *Config) { d.LogFormat = s.LogFormat },
	FlagDPI:        func(d, s *Config) { d.PDFDPI = s.PDFDPI },
	FlagChromePath: func(d, s *Config) { d.ChromePath = s.ChromePath },
	FlagNoSandbox:  func(d, s *Config) { d.NoSandbox = s.NoSandbox },
	FlagPDFTimeout: func(d, s *Config) { d.PDFTimeout = s.PDFTimeout },
}

// Overlay copies into dst the fields of parsed whose flags were set
// explicitly on fs.
func Overlay(fs *pflag.FlagSet, parsed, dst *Config) {
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overlays[f.Name]; ok {
			apply(dst, parsed)
		}
	})
}
