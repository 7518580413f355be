package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pux2html/internal/common"
)

const (
	// ManifestName is the zip entry holding the JSON manifest.
	ManifestName = "export.data"
	// FilesPrefix is the directory holding attachment entries.
	FilesPrefix = "files/"
)

// Index maps "<documentId>__<fileName>" to attachment bytes.
type Index map[string][]byte

// Get returns the content stored under key.
func (x Index) Get(key string) ([]byte, bool) {
	b, ok := x[key]
	return b, ok
}

// Len returns the number of attachments.
func (x Index) Len() int {
	return len(x)
}

// Keys returns the attachment keys in lexical order.
func (x Index) Keys() []string {
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Archive is the loaded content of an export container.
type Archive struct {
	Manifest    []byte
	Attachments Index
}

// Load opens the zip at path and reads the manifest and every attachment.
// Any failure is reported as common.ErrArchiveRead.
func Load(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrArchiveRead, path, err)
	}
	defer zr.Close()

	return read(&zr.Reader)
}

// Read is Load for an archive already held in memory.
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrArchiveRead, err)
	}
	return read(zr)
}

func read(zr *zip.Reader) (*Archive, error) {
	a := &Archive{Attachments: make(Index)}
	found := false

	for _, f := range zr.File {
		switch {
		case f.Name == ManifestName:
			b, err := readEntry(f)
			if err != nil {
				return nil, err
			}
			a.Manifest = b
			found = true

		case strings.HasPrefix(f.Name, FilesPrefix):
			if f.FileInfo().IsDir() {
				continue
			}
			key := strings.TrimPrefix(f.Name, FilesPrefix)
			if key == "" {
				continue
			}
			b, err := readEntry(f)
			if err != nil {
				return nil, err
			}
			a.Attachments[key] = b
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s not found in archive", common.ErrArchiveRead, ManifestName)
	}

	return a, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open entry %s: %v", common.ErrArchiveRead, f.Name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read entry %s: %v", common.ErrArchiveRead, f.Name, err)
	}
	return b, nil
}
