package extract

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Manifest shapes. Optional keys decode to zero values, so a missing title,
// url or notes field reads as "" without further checks.

type manifest struct {
	Accounts []account `json:"accounts"`
}

type account struct {
	Attrs  attrs   `json:"attrs"`
	Vaults []vault `json:"vaults"`
}

type vault struct {
	Attrs attrs             `json:"attrs"`
	Items []json.RawMessage `json:"items"`
}

type attrs struct {
	Name string `json:"name"`
}

type item struct {
	FavIndex float64         `json:"favIndex"`
	Overview json.RawMessage `json:"overview"`
	Details  details         `json:"details"`
}

type overview struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type details struct {
	NotesPlain  string       `json:"notesPlain"`
	LoginFields []loginField `json:"loginFields"`
	Sections    []section    `json:"sections"`
}

type loginField struct {
	Designation string `json:"designation"`
	Value       string `json:"value"`
}

type section struct {
	Title  string         `json:"title"`
	Fields []sectionField `json:"fields"`
}

type sectionField struct {
	Title string          `json:"title"`
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value"`
}

type fileRef struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
}

// Address is the address value of a section field.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	State   string `json:"state"`
}

// fieldValue is a section field value keyed by shape name.
type fieldValue map[string]json.RawMessage

func (v fieldValue) has(key string) bool {
	_, ok := v[key]
	return ok
}

// str returns v[key] as text. Strings are unquoted, null reads as "" and
// other scalars keep their JSON spelling.
func (v fieldValue) str(key string) string {
	return rawString(v[key])
}

func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// rawEpoch reads a JSON number, or a string holding one, as Unix seconds.
func rawEpoch(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// isEmptyObject reports whether raw is absent, null or {}.
func isEmptyObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) == 0
}
