/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: payload.go
Description: Target payload loading. Reads the whole target into memory through an
afero filesystem so commands use the real disk and tests use an in-memory tree.
*/

package payload

import (
	"errors"

	"github.com/kleascm/bytehunt/pkg/core"
	"github.com/spf13/afero"
)

// DefaultPath is the target used when no path is configured
const DefaultPath = "/bin/chmod"

var errIsDirectory = errors.New("path is a directory")

// Loader reads target payloads from a filesystem
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs; a nil fs means the operating system filesystem
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads the complete payload at path
// Any failure is returned as a *core.PayloadReadError
func (l *Loader) Load(path string) ([]byte, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, &core.PayloadReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &core.PayloadReadError{Path: path, Err: errIsDirectory}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, &core.PayloadReadError{Path: path, Err: err}
	}
	return data, nil
}
