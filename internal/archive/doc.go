// Package archive reads a 1Password export container (.1pux).
//
// The container is a zip file with:
//
//	export.data            JSON manifest (accounts -> vaults -> items)
//	files/<docID>__<name>  attachment content, one entry per document
//
// Load returns the raw manifest bytes together with an Index of attachment
// content keyed by "<docID>__<name>", i.e. the entry name with the files/
// prefix stripped. The index is built completely before it is returned and
// is treated as read-only afterwards.
package archive
