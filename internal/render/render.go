package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"mime"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/filex"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/dmitrijs2005/pux2html/internal/models"
	"github.com/dmitrijs2005/pux2html/internal/otpx"
	"github.com/google/uuid"
)

//go:embed templates/report.html.tmpl
var builtin embed.FS

const builtinName = "templates/report.html.tmpl"

// anchorSpace namespaces the SHA-1 UUIDs used as element ids.
var anchorSpace = uuid.MustParse("6f1f4c52-2d0e-4a43-9a4e-2b0c3c1f6a11")

// Page is the data handed to the template.
type Page struct {
	Title       string
	Folders     []models.Folder
	RecordCount int
	GeneratedAt string
}

// Renderer renders reports through an html/template.
type Renderer struct {
	log          logging.Logger
	templatePath string
	fallback     bool
	now          func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateFile reads the template from path. When fallback is set and
// the file does not exist, the built-in template is used instead.
func WithTemplateFile(path string, fallback bool) Option {
	return func(r *Renderer) {
		r.templatePath = path
		r.fallback = fallback
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithClock sets the time source for the generation stamp and TOTP codes.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New returns a Renderer using the built-in template unless configured
// otherwise.
func New(opts ...Option) *Renderer {
	r := &Renderer{log: logging.NewNop(), now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render executes the template for report and writes the document to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *models.Report, title string) error {
	tmpl, err := r.load(ctx)
	if err != nil {
		return err
	}

	if report == nil {
		report = models.NewReport()
	}
	now := r.now()
	page := Page{
		Title:       title,
		Folders:     report.Folders(),
		RecordCount: report.RecordCount(),
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
	}

	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	return nil
}

// WriteFile renders report into the file at path. Nothing is written when
// rendering fails.
func (r *Renderer) WriteFile(ctx context.Context, path string, report *models.Report, title string) error {
	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, report, title); err != nil {
		return err
	}
	if err := filex.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRender, err)
	}
	return nil
}

func (r *Renderer) load(ctx context.Context) (*template.Template, error) {
	base := template.New("report").Funcs(r.funcs())

	if r.templatePath != "" {
		src, err := os.ReadFile(r.templatePath)
		switch {
		case err == nil:
			t, err := base.Parse(string(src))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", common.ErrTemplate, r.templatePath, err)
			}
			return t, nil
		case errors.Is(err, fs.ErrNotExist) && r.fallback:
			r.log.Warn(ctx, "template file not found, using built-in template", "path", r.templatePath)
		default:
			return nil, fmt.Errorf("%w: %v", common.ErrTemplate, err)
		}
	}

	src, err := builtin.ReadFile(builtinName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTemplate, err)
	}
	t, err := base.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("%w: built-in: %v", common.ErrTemplate, err)
	}
	return t, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"nl2br":   nl2br,
		"dataURI": dataURI,
		"isImage": isImage,
		"totp": func(value string) *otpx.Details {
			d, err := otpx.Describe(value, r.now())
			if err != nil {
				return nil
			}
			return &d
		},
		"folderAnchor": folderAnchor,
		"recordAnchor": recordAnchor,
	}
}

func nl2br(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = template.HTMLEscapeString(l)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true, "bmp": true,
}

func isImage(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// mimeType falls back to application/octet-stream for unknown extensions.
func mimeType(ext string) string {
	if ext == "" {
		return "application/octet-stream"
	}
	t := mime.TypeByExtension("." + strings.ToLower(ext))
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

func dataURI(f models.Field) template.URL {
	return template.URL("data:" + mimeType(f.Extension) + ";base64," + f.Value)
}

func folderAnchor(name string) string {
	return "f-" + uuid.NewSHA1(anchorSpace, []byte(name)).String()
}

func recordAnchor(folder string, i int, name string) string {
	key := folder + "\x00" + strconv.Itoa(i) + "\x00" + name
	return "r-" + uuid.NewSHA1(anchorSpace, []byte(key)).String()
}
