package cli

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pux2html/internal/config"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/stretchr/testify/require"
)

type obj = map[string]any

// samplePux writes a one-account export with two logins, one of them
// without an overview, and one text attachment.
func samplePux(t *testing.T, dir string) string {
	t.Helper()

	manifest := obj{"accounts": []obj{{
		"attrs": obj{"name": "alice"},
		"vaults": []obj{{
			"attrs": obj{"name": "Personal"},
			"items": []obj{
				{
					"favIndex": 1,
					"overview": obj{"title": "Example", "url": "https://example.com"},
					"details": obj{
						"loginFields": []obj{
							{"designation": "username", "value": "alice"},
							{"designation": "password", "value": "secret"},
						},
						"notesPlain": "first\nsecond",
						"sections": []obj{{"fields": []obj{
							{"title": "readme", "value": obj{"file": obj{"documentId": "doc1", "fileName": "readme.json"}}},
							{"title": "pin", "value": obj{"concealed": "1234"}},
						}}},
					},
				},
				{"details": obj{}},
			},
		}},
	}}}

	data, err := json.Marshal(manifest)
	require.NoError(t, err)

	path := filepath.Join(dir, "export.1pux")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range map[string][]byte{
		"export.data":             data,
		"files/doc1__readme.json": []byte(`{"hello":"attachment"}`),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

type fakePrinter struct {
	html   []byte
	closed bool
}

func (p *fakePrinter) WriteFile(_ context.Context, path string, html []byte) error {
	p.html = html
	return os.WriteFile(path, append([]byte("%PDF-fake\n"), html...), 0o600)
}

func (p *fakePrinter) Close() error {
	p.closed = true
	return nil
}

func fakePrinterFactory(p *fakePrinter) PrinterFactory {
	return func(context.Context, *config.Config, logging.Logger) (Printer, error) {
		return p, nil
	}
}
