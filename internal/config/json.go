package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell an absent key apart from a zero value.
type JsonConfig struct {
	InputFile    *string         `json:"input_file"`
	OutputFile   *string         `json:"output_file"`
	Verbose      *bool           `json:"verbose"`
	TemplatePath *string         `json:"template_path"`
	Title        *string         `json:"title"`
	Format       *string         `json:"format"`
	LogFormat    *string         `json:"log_format"`
	PDFDPI       *int            `json:"pdf_dpi"`
	ChromePath   *string         `json:"chrome_path"`
	NoSandbox    *bool           `json:"no_sandbox"`
	PDFTimeout   *timex.Duration `json:"pdf_timeout"`
}

// LoadJSON overlays cfg with the keys present in the JSON file at path.
// An empty path is a no-op. Read and decode failures wrap common.ErrUsage.
func LoadJSON(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading config: %v", common.ErrUsage, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: parsing config %s: %v", common.ErrUsage, path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.InputFile, jc.InputFile)
	setIf(&cfg.OutputFile, jc.OutputFile)
	setIf(&cfg.Verbose, jc.Verbose)
	setIf(&cfg.TemplatePath, jc.TemplatePath)
	setIf(&cfg.Title, jc.Title)
	setIf(&cfg.Format, jc.Format)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.PDFDPI, jc.PDFDPI)
	setIf(&cfg.ChromePath, jc.ChromePath)
	setIf(&cfg.NoSandbox, jc.NoSandbox)
	if jc.PDFTimeout != nil {
		cfg.PDFTimeout = jc.PDFTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
