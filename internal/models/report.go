package models

// Folder is a named, ordered group of records.
type Folder struct {
	Name    string
	Records []Record
}

// Report maps folder names to records. Folders keep first-insertion order and
// records keep append order. The zero value is ready to use.
type Report struct {
	folders []*Folder
	index   map[string]int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Append adds rec to the named folder, creating the folder on first use.
func (r *Report) Append(folder string, rec Record) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	i, ok := r.index[folder]
	if !ok {
		i = len(r.folders)
		r.index[folder] = i
		r.folders = append(r.folders, &Folder{Name: folder})
	}
	r.folders[i].Records = append(r.folders[i].Records, rec)
}

// Folder returns the records of a folder and whether the folder exists.
func (r *Report) Folder(name string) ([]Record, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.folders[i].Records, true
}

// Folders returns the folders in first-insertion order.
func (r *Report) Folders() []Folder {
	out := make([]Folder, len(r.folders))
	for i, f := range r.folders {
		out[i] = *f
	}
	return out
}

// Names returns folder names in first-insertion order.
func (r *Report) Names() []string {
	out := make([]string, len(r.folders))
	for i, f := range r.folders {
		out[i] = f.Name
	}
	return out
}

// Len returns the number of folders.
func (r *Report) Len() int {
	return len(r.folders)
}

// RecordCount returns the number of records across all folders.
func (r *Report) RecordCount() int {
	n := 0
	for _, f := range r.folders {
		n += len(f.Records)
	}
	return n
}
