// core/anchorio/files.go
package anchorio

import (
	"errors"
	"io"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
)

// Files reads several dumps back to back as one query stream. Files are
// opened lazily and closed as soon as they are exhausted.
type Files struct {
	paths []string
	i     int
	rc    io.ReadCloser
	r     *Reader
}

// OpenFiles returns a stream over paths ("-" = stdin).
func OpenFiles(paths []string) *Files { return &Files{paths: paths} }

// Next returns the next query from the current file, moving on to the next
// file at EOF.
func (f *Files) Next() (chain.Query, error) {
	for {
		if f.r == nil {
			if f.i >= len(f.paths) {
				return chain.Query{}, io.EOF
			}
			p := f.paths[f.i]
			f.i++
			rc, err := Open(p)
			if err != nil {
				return chain.Query{}, err
			}
			name := p
			if p == "-" || p == "" {
				name = "stdin"
			}
			f.rc, f.r = rc, NewReader(rc, name)
		}
		q, err := f.r.Next()
		if errors.Is(err, io.EOF) {
			cerr := f.rc.Close()
			f.rc, f.r = nil, nil
			if cerr != nil {
				return chain.Query{}, cerr
			}
			continue
		}
		return q, err
	}
}

// Close releases the file currently open, if any.
func (f *Files) Close() error {
	if f.rc == nil {
		return nil
	}
	err := f.rc.Close()
	f.rc, f.r = nil, nil
	return err
}
