// Package config loads runtime configuration for pux2html.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config (see LoadJSON).
//  3. Command-line flags, which override earlier values only when given
//     explicitly (see Overlay).
//
// # JSON schema
//
// Keys are snake_case. The PDF timeout uses timex.Duration, so it may be a
// string like "30s" or integer nanoseconds. Keys that are absent keep their
// current value:
//
//	{
//	  "input_file": "export.1pux",
//	  "output_file": "report.html",
//	  "verbose": false,
//	  "template_path": "OutputTemplate.in.html",
//	  "title": "1Password export",
//	  "format": "html",
//	  "log_format": "console",
//	  "pdf_dpi": 72,
//	  "chrome_path": "",
//	  "no_sandbox": false,
//	  "pdf_timeout": "30s"
//	}
//
// Environment variables are not read.
package config
