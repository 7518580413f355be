// Package common defines the sentinel errors shared by the loader, the
// extractor, the renderer and the CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Fatal errors: the run stops and the process exits non-zero.
	ErrUsage         = errors.New("usage error")
	ErrArchiveRead   = errors.New("archive read error")
	ErrManifestParse = errors.New("manifest parse error")
	ErrTemplate      = errors.New("template error")
	ErrRender        = errors.New("render error")

	// Non-fatal errors: logged, the affected item or field is left out.
	ErrAttachmentMissing      = errors.New("attachment missing")
	ErrAttachmentConvert      = errors.New("attachment conversion failed")
	ErrUnrecognizedFieldShape = errors.New("unrecognized field shape")
	ErrEmptyOverview          = errors.New("empty overview")
	ErrMalformedItem          = errors.New("malformed item")
)

// IsFatal reports whether err stops the run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrAttachmentMissing),
		errors.Is(err, ErrAttachmentConvert),
		errors.Is(err, ErrUnrecognizedFieldShape),
		errors.Is(err, ErrEmptyOverview),
		errors.Is(err, ErrMalformedItem):
		return false
	}
	return true
}
