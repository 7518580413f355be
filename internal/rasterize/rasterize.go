// Package rasterize turns PDF attachments into PNG images so they can be
// embedded inline in the HTML report.
package rasterize

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI matches MuPDF's default pixmap resolution.
const DefaultDPI = 72

// ErrNoPages is returned for a document without pages.
var ErrNoPages = errors.New("rasterize: document has no pages")

// Rasterizer renders the first page of a PDF document as PNG.
type Rasterizer interface {
	FirstPagePNG(pdf []byte) ([]byte, error)
}

// Func adapts a plain function to Rasterizer.
type Func func(pdf []byte) ([]byte, error)

func (f Func) FirstPagePNG(pdf []byte) ([]byte, error) {
	return f(pdf)
}

// Fitz renders pages with MuPDF.
type Fitz struct {
	dpi float64
}

// NewFitz returns a MuPDF-backed rasterizer. A non-positive dpi selects
// DefaultDPI.
func NewFitz(dpi float64) *Fitz {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Fitz{dpi: dpi}
}

// FirstPagePNG decodes pdf from memory and renders page 0.
func (f *Fitz) FirstPagePNG(pdf []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("rasterize: open document: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, ErrNoPages
	}

	png, err := doc.ImagePNG(0, f.dpi)
	if err != nil {
		return nil, fmt.Errorf("rasterize: render page: %w", err)
	}
	return png, nil
}
