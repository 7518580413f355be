package extract

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/pux2html/internal/common"
	"github.com/dmitrijs2005/pux2html/internal/logging"
	"github.com/dmitrijs2005/pux2html/internal/models"
	"github.com/dmitrijs2005/pux2html/internal/rasterize"
	"golang.org/x/crypto/blake2b"
)

// Attachments resolves attachment keys to content. archive.Index
// implements it.
type Attachments interface {
	Get(key string) ([]byte, bool)
}

type noAttachments struct{}

func (noAttachments) Get(string) ([]byte, bool) { return nil, false }

// Extractor converts manifests to reports. It holds no per-run state and
// may be reused.
type Extractor struct {
	log        logging.Logger
	rasterizer rasterize.Rasterizer
	loc        *time.Location
	verbose    bool
	warnOut    io.Writer
	warnColor  bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithRasterizer sets the PDF renderer. Defaults to MuPDF at 72 dpi.
func WithRasterizer(r rasterize.Rasterizer) Option {
	return func(e *Extractor) { e.rasterizer = r }
}

// WithLocation sets the zone used for date fields. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Extractor) { e.loc = loc }
}

// WithVerbose enables raw item dumps.
func WithVerbose(v bool) Option {
	return func(e *Extractor) { e.verbose = v }
}

// WithWarningOutput sets where the sensitive-data banner is printed in
// verbose mode. Defaults to os.Stderr without color.
func WithWarningOutput(w io.Writer, color bool) Option {
	return func(e *Extractor) {
		e.warnOut = w
		e.warnColor = color
	}
}

// New returns an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		log:        logging.NewNop(),
		rasterizer: rasterize.NewFitz(rasterize.DefaultDPI),
		loc:        time.Local,
		warnOut:    os.Stderr,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// run carries the state of one Extract call.
type run struct {
	*Extractor
	ctx         context.Context
	attachments Attachments
	res         *Result
}

// Extract parses data and builds the report. Only a manifest that cannot be
// decoded is an error (common.ErrManifestParse); anything else is reported
// through Result.Diagnostics.
func (e *Extractor) Extract(ctx context.Context, data []byte, attachments Attachments) (*Result, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrManifestParse, err)
	}

	if attachments == nil {
		attachments = noAttachments{}
	}

	r := &run{
		Extractor:   e,
		ctx:         ctx,
		attachments: attachments,
		res:         &Result{Report: models.NewReport()},
	}

	for _, acc := range m.Accounts {
		r.res.Summary.Accounts++
		e.log.Info(ctx, "processing account", "account", acc.Attrs.Name)

		for _, v := range acc.Vaults {
			r.res.Summary.Folders++
			folder := v.Attrs.Name
			e.log.Info(ctx, "processing folder", "folder", folder)

			for _, raw := range v.Items {
				r.res.Summary.Items++
				d := Diagnostic{Account: acc.Attrs.Name, Folder: folder}

				rec, ok := r.item(raw, d)
				if !ok {
					continue
				}
				r.res.Report.Append(folder, rec)
				r.res.Summary.Records++
			}
		}
	}

	return r.res, nil
}

// report records a non-fatal problem and logs it.
func (r *run) report(d Diagnostic) {
	r.res.Diagnostics = append(r.res.Diagnostics, d)
	if itemSkipped(d.Err) {
		r.res.Summary.SkippedItems++
	} else {
		r.res.Summary.SkippedFields++
	}
	r.log.Warn(r.ctx, "skipping", "folder", d.Folder, "item", d.Item, "field", d.Field, "reason", d.Err.Error())
}

func (r *run) item(raw json.RawMessage, d Diagnostic) (models.Record, bool) {
	if r.verbose {
		writeWarning(r.warnOut, r.warnColor)
		r.log.Debug(r.ctx, "raw item", "item", string(raw))
	}

	var it item
	if err := json.Unmarshal(raw, &it); err != nil {
		d.Err = fmt.Errorf("%w: %v", common.ErrMalformedItem, err)
		r.report(d)
		return models.Record{}, false
	}

	if isEmptyObject(it.Overview) {
		d.Err = common.ErrEmptyOverview
		r.report(d)
		return models.Record{}, false
	}

	var ov overview
	if err := json.Unmarshal(it.Overview, &ov); err != nil {
		d.Err = fmt.Errorf("%w: overview: %v", common.ErrMalformedItem, err)
		r.report(d)
		return models.Record{}, false
	}
	d.Item = ov.Title

	rec := models.Record{
		Name:        ov.Title,
		URL:         ov.URL,
		Note:        it.Details.NotesPlain,
		Favorite:    it.FavIndex > 0,
		OtherFields: []models.Field{},
	}

	for _, lf := range it.Details.LoginFields {
		switch lf.Designation {
		case "username":
			rec.Username = lf.Value
		case "password":
			rec.Password = lf.Value
		}
	}

	for _, sec := range it.Details.Sections {
		if len(sec.Fields) == 0 {
			continue
		}
		for _, sf := range sec.Fields {
			fd := d
			fd.Field = sf.Title

			f, err := r.field(sf)
			if err != nil {
				fd.Err = err
				r.report(fd)
				continue
			}
			rec.OtherFields = append(rec.OtherFields, f)
			r.res.Summary.Fields++
		}
	}

	return rec, true
}

// field converts one section field. Errors are non-fatal.
func (r *run) field(sf sectionField) (models.Field, error) {
	var v fieldValue
	if err := json.Unmarshal(sf.Value, &v); err != nil || v == nil {
		return models.Field{}, common.ErrUnrecognizedFieldShape
	}

	kind, key, ok := Classify(v)
	if !ok {
		return models.Field{}, common.ErrUnrecognizedFieldShape
	}

	f := models.Field{Title: sf.Title, Kind: kind}

	switch kind {
	case models.FieldKindFile:
		return r.file(sf.Title, v[key])

	case models.FieldKindDate:
		epoch, ok := rawEpoch(v[key])
		if !ok {
			return models.Field{}, fmt.Errorf("%w: date %s", common.ErrUnrecognizedFieldShape, v[key])
		}
		f.Value = FormatDate(epoch, r.loc)

	case models.FieldKindEmail:
		f.Value = emailAddress(v[key])

	case models.FieldKindAddress:
		f.Value = ComposeAddress(address(v[key]))

	default:
		f.Value = v.str(key)
	}

	return f, nil
}

// file embeds an attachment. PDFs are swapped for a PNG of their first page;
// the swap stays local to the returned field.
func (r *run) file(title string, raw json.RawMessage) (models.Field, error) {
	var ref fileRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return models.Field{}, fmt.Errorf("%w: file %v", common.ErrUnrecognizedFieldShape, err)
	}

	key := AttachmentKey(ref.DocumentID, ref.FileName)
	content, ok := r.attachments.Get(key)
	if !ok {
		return models.Field{}, fmt.Errorf("%w: %s", common.ErrAttachmentMissing, key)
	}

	sum := blake2b.Sum256(content)
	ext := path.Ext(ref.FileName)

	if strings.EqualFold(ext, ".pdf") {
		png, err := r.rasterizer.FirstPagePNG(content)
		if err != nil {
			return models.Field{}, fmt.Errorf("%w: %s: %v", common.ErrAttachmentConvert, key, err)
		}
		content = png
		ext = ".png"
		r.res.Summary.ConvertedPDFs++
	}
	r.res.Summary.Attachments++

	return models.Field{
		Title:     title,
		Kind:      models.FieldKindFile,
		Value:     base64.StdEncoding.EncodeToString(content),
		Extension: strings.TrimPrefix(ext, "."),
		Checksum:  hex.EncodeToString(sum[:]),
	}, nil
}
