package extract

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/dmitrijs2005/pux2html/internal/rasterize"
	"github.com/stretchr/testify/require"
)

type obj = map[string]any

func manifestJSON(t *testing.T, accounts ...obj) []byte {
	t.Helper()
	b, err := json.Marshal(obj{"accounts": accounts})
	require.NoError(t, err)
	return b
}

func acct(name string, vaults ...obj) obj {
	return obj{"attrs": obj{"name": name}, "vaults": vaults}
}

func vlt(name string, items ...obj) obj {
	if items == nil {
		items = []obj{}
	}
	return obj{"attrs": obj{"name": name}, "items": items}
}

func loginItem(title, url, user, pass string, sections ...obj) obj {
	if sections == nil {
		sections = []obj{}
	}
	return obj{
		"overview": obj{"title": title, "url": url},
		"details": obj{
			"loginFields": []obj{
				{"designation": "username", "value": user},
				{"designation": "password", "value": pass},
			},
			"sections": sections,
		},
	}
}

func sec(fields ...obj) obj {
	return obj{"title": "", "fields": fields}
}

func fld(title string, value any) obj {
	return obj{"title": title, "value": value}
}

// tinyPNG returns a valid 2x1 PNG.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fakeRasterizer(t *testing.T) rasterize.Rasterizer {
	out := tinyPNG(t)
	return rasterize.Func(func(pdf []byte) ([]byte, error) {
		return out, nil
	})
}

type mapAttachments map[string][]byte

func (m mapAttachments) Get(key string) ([]byte, bool) {
	b, ok := m[key]
	return b, ok
}
