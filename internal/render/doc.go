// Package render writes a models.Report as a single self-contained HTML
// document.
//
// Templates use html/template and receive a Page value. Besides the standard
// functions they can call:
//
//	nl2br s              escape s and turn newlines into <br>
//	dataURI f            data: URL for a file field
//	isImage ext          whether an extension can be shown inline
//	totp value           *otpx.Details for a TOTP value, nil when it does not parse
//	folderAnchor name    stable element id for a folder
//	recordAnchor f i n   stable element id for the i-th record of a folder
//
// The built-in template is used when no template file is configured, or when
// the default file is absent.
package render
