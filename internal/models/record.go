// Package models defines the normalized records produced from a vault export.
package models

// FieldKind classifies a Field. The empty kind marks a concealed value that
// is displayed as a plain secret.
type FieldKind string

const (
	FieldKindTOTP      FieldKind = "totp"
	FieldKindFile      FieldKind = "file"
	FieldKindDate      FieldKind = "date"
	FieldKindEmail     FieldKind = "email"
	FieldKindConcealed FieldKind = ""
	FieldKindAddress   FieldKind = "address"
	FieldKindPhone     FieldKind = "phone"
	FieldKindURL       FieldKind = "url"
	FieldKindString    FieldKind = "string"
)

// Field is one labelled value from an item section.
//
// Value holds the payload for every kind. For files it is the base64
// encoded content, with Extension (no leading dot) and Checksum (BLAKE2b-256
// of the attachment as stored in the archive) set as well.
type Field struct {
	Title     string    `json:"title"`
	Kind      FieldKind `json:"kind"`
	Value     string    `json:"value"`
	Extension string    `json:"extension,omitempty"`
	Checksum  string    `json:"checksum,omitempty"`
}

// IsFile reports whether the field carries an embedded attachment.
func (f Field) IsFile() bool { return f.Kind == FieldKindFile }

// Record is one credential entry.
type Record struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Note        string  `json:"note"`
	Favorite    bool    `json:"favorite,omitempty"`
	OtherFields []Field `json:"other_fields"`
}
