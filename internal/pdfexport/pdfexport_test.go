package pdfexport

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
	c, err := New(context.Background(), WithNoSandbox(true))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestConverter_WriteFile(t *testing.T) {
	c := newTestConverter(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := c.WriteFile(context.Background(), path, []byte("<html><body><h1>Personal</h1></body></html>"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestConverter_ClosedRejectsWork(t *testing.T) {
	c := &Converter{}
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.PrintHTML(context.Background(), []byte("<p>x</p>"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestOptions(t *testing.T) {
	var cfg config
	for _, o := range []Option{
		WithChromePath("/usr/bin/chromium"),
		WithNoSandbox(true),
		WithTimeout(0),
	} {
		o(&cfg)
	}
	assert.Equal(t, "/usr/bin/chromium", cfg.chromePath)
	assert.True(t, cfg.noSandbox)
	assert.Zero(t, cfg.timeout)
}
