// Package cli is the pux2html command line.
//
// NewRootCmd builds the cobra command, Execute runs it with process-style
// arguments and returns the exit status, and App performs one conversion:
//
//	archive.Load -> extract.Extractor -> render.Renderer [-> pdfexport]
//
// Exit codes: 0 on success, 2 for usage errors (usage is printed), 1 for
// every other failure.
package cli
