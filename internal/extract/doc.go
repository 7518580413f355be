// Package extract turns a 1Password export manifest into a folder-grouped
// models.Report.
//
// # Walk
//
// Accounts are visited in manifest order, then each account's vaults, then
// each vault's items. The vault name is the folder key. An item becomes a
// models.Record only when it has a non-empty overview; otherwise it is
// skipped with an ErrEmptyOverview diagnostic.
//
// # Login fields
//
// details.loginFields entries designated "username" or "password" fill the
// record's credentials. Later entries overwrite earlier ones.
//
// # Section fields
//
// Every field of every non-empty section produces at most one models.Field.
// The field value is an object identified by which key it carries, checked
// in this order (see Classify):
//
//	totp, file, date, email, concealed, address, phone, url, string
//
// A value matching none of them is skipped with ErrUnrecognizedFieldShape.
// File values are looked up in the attachment index by
// "<documentId>__<fileName>". PDF attachments are replaced by a PNG of their
// first page; the index itself is never modified. A missing attachment is
// skipped with ErrAttachmentMissing.
//
// # Diagnostics
//
// Progress (account and folder names) is logged at info level. Skipped items
// and fields are logged as warnings and collected in Result.Diagnostics so
// the caller can print a summary. In verbose mode every raw item is dumped
// at debug level after a sensitive-data warning.
package extract
