package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/models"
)

// shapeOrder is the fixed priority in which value keys are checked. Some
// values carry more than one key, so the order decides the kind.
var shapeOrder = []struct {
	key  string
	kind models.FieldKind
}{
	{"totp", models.FieldKindTOTP},
	{"file", models.FieldKindFile},
	{"date", models.FieldKindDate},
	{"email", models.FieldKindEmail},
	{"concealed", models.FieldKindConcealed},
	{"address", models.FieldKindAddress},
	{"phone", models.FieldKindPhone},
	{"url", models.FieldKindURL},
	{"string", models.FieldKindString},
}

// DateLayout is the display format of date fields.
const DateLayout = "2006-01-02 15:04:05"

// Classify returns the kind of a section field value and the key that
// selected it. ok is false when the value carries none of the known keys.
func Classify(v map[string]json.RawMessage) (kind models.FieldKind, key string, ok bool) {
	for _, s := range shapeOrder {
		if _, present := v[s.key]; present {
			return s.kind, s.key, true
		}
	}
	return "", "", false
}

// FormatDate formats Unix seconds in loc using DateLayout.
func FormatDate(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(DateLayout)
}

// ComposeAddress joins the address parts as "street, city, country, zip, state".
func ComposeAddress(a Address) string {
	return strings.Join([]string{a.Street, a.City, a.Country, a.Zip, a.State}, ", ")
}

// AttachmentKey builds the attachment index key for a file value.
func AttachmentKey(documentID, fileName string) string {
	return documentID + "__" + fileName
}

// emailAddress accepts {"email_address": "..."} as exported by 1Password and
// a bare string.
func emailAddress(raw json.RawMessage) string {
	var obj struct {
		Address string `json:"email_address"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Address
	}
	return rawString(raw)
}

// address decodes an address value. Parts that are missing or not strings
// read as "".
func address(raw json.RawMessage) Address {
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return Address{}
	}
	return Address{
		Street:  rawString(parts["street"]),
		City:    rawString(parts["city"]),
		Country: rawString(parts["country"]),
		Zip:     rawString(parts["zip"]),
		State:   rawString(parts["state"]),
	}
}
