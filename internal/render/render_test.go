package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleReport() *models.Report {
	r := models.NewReport()
	r.Append("Personal", models.Record{
		Name:     "Mail <primary>",
		URL:      "https://mail.example.com",
		Username: "alice",
		Password: "s3cr3t",
		Note:     "line one\nline <two>",
		Favorite: true,
		OtherFields: []models.Field{
			{Title: "recovery", Kind: models.FieldKindEmail, Value: "alice@example.com"},
			{Title: "pin", Kind: models.FieldKindConcealed, Value: "1234"},
			{Title: "scan", Kind: models.FieldKindFile, Value: "iVBORw0KGgo=", Extension: "png", Checksum: "abc123"},
			{Title: "contract", Kind: models.FieldKindFile, Value: "e30=", Extension: "json"},
			{Title: "otp", Kind: models.FieldKindTOTP, Value: "JBSWY3DPEHPK3PXP"},
		},
	})
	r.Append("Work", models.Record{Name: "VPN", OtherFields: []models.Field{}})
	return r
}

func render(t *testing.T, r *Renderer, report *models.Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), &buf, report, "My export"))
	return buf.String()
}

func TestRender_BuiltinTemplate(t *testing.T) {
	out := render(t, New(WithClock(func() time.Time { return fixedNow })), sampleReport())

	assert.Contains(t, out, "<title>My export</title>")
	assert.Contains(t, out, `<meta charset="utf-8">`)
	assert.Contains(t, out, "2 records in 2 folders, generated 2024-03-01 12:00:00")
	assert.Contains(t, out, "Mail &lt;primary&gt;")
	assert.NotContains(t, out, "<primary>")
	assert.Contains(t, out, "line one<br>line &lt;two&gt;")
	assert.Contains(t, out, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.Contains(t, out, `href="data:application/json;base64,e30="`)
	assert.Contains(t, out, "BLAKE2b-256 abc123")
	assert.Contains(t, out, "mailto:alice@example.com")
	assert.Contains(t, out, `title="Favorite"`)
	assert.Contains(t, out, "code at export:")

	personal := strings.Index(out, "<h2>Personal</h2>")
	work := strings.Index(out, "<h2>Work</h2>")
	require.NotEqual(t, -1, personal)
	require.NotEqual(t, -1, work)
	assert.Less(t, personal, work)
}

func TestRender_EmptyReport(t *testing.T) {
	out := render(t, New(), models.NewReport())
	assert.Contains(t, out, "0 records in 0 folders")

	out = render(t, New(), nil)
	assert.Contains(t, out, "0 records in 0 folders")
}

func TestRender_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.html")
	src := `{{range .Folders}}[{{.Name}}:{{range .Records}}{{.Name}};{{end}}]{{end}}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out := render(t, New(WithTemplateFile(path, false)), sampleReport())
	assert.Equal(t, "[Personal:Mail &lt;primary&gt;;][Work:VPN;]", out)
}

func TestRender_MissingTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.html")

	t.Run("explicit path fails", func(t *testing.T) {
		err := New(WithTemplateFile(path, false)).Render(context.Background(), &bytes.Buffer{}, sampleReport(), "x")
		require.ErrorIs(t, err, common.ErrTemplate)
	})

	t.Run("default path falls back", func(t *testing.T) {
		out := render(t, New(WithTemplateFile(path, true)), sampleReport())
		assert.Contains(t, out, "<h2>Personal</h2>")
	})
}

func TestRender_BadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.html")
	require.NoError(t, os.WriteFile(path, []byte("{{range .Folders}"), 0o600))

	err := New(WithTemplateFile(path, true)).Render(context.Background(), &bytes.Buffer{}, sampleReport(), "x")
	require.ErrorIs(t, err, common.ErrTemplate)
}

func TestRender_ExecutionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exec.html")
	require.NoError(t, os.WriteFile(path, []byte("{{.Missing}}"), 0o600))

	err := New(WithTemplateFile(path, false)).Render(context.Background(), &bytes.Buffer{}, sampleReport(), "x")
	require.ErrorIs(t, err, common.ErrRender)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.html")

	require.NoError(t, New().WriteFile(context.Background(), path, sampleReport(), "x"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<!DOCTYPE html>")))
}

func TestWriteFile_NothingWrittenOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")

	err := New(WithTemplateFile(filepath.Join(dir, "nope.html"), false)).
		WriteFile(context.Background(), path, sampleReport(), "x")
	require.ErrorIs(t, err, common.ErrTemplate)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNl2br(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a\nb", "a<br>b"},
		{"a\r\nb", "a<br>b"},
		{"<b>&", "&lt;b&gt;&amp;"},
		{"\n\n", "<br><br>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(nl2br(tt.in)), tt.in)
	}
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "image/png", mimeType("png"))
	assert.Equal(t, "image/png", mimeType("PNG"))
	assert.Equal(t, "application/octet-stream", mimeType(""))
	assert.Equal(t, "application/octet-stream", mimeType("nosuchext"))
}

func TestAnchors(t *testing.T) {
	assert.Equal(t, folderAnchor("Personal"), folderAnchor("Personal"))
	assert.NotEqual(t, folderAnchor("Personal"), folderAnchor("Work"))
	assert.True(t, strings.HasPrefix(folderAnchor("Personal"), "f-"))

	assert.Equal(t, recordAnchor("P", 0, "a"), recordAnchor("P", 0, "a"))
	assert.NotEqual(t, recordAnchor("P", 0, "a"), recordAnchor("P", 1, "a"))
	assert.True(t, strings.HasPrefix(recordAnchor("P", 0, "a"), "r-"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, isImage("png"))
	assert.True(t, isImage("JPG"))
	assert.False(t, isImage("pdf"))
	assert.False(t, isImage(""))
}
