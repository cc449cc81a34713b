/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: file_writer_test.go
Description: Tests for timestamped naming and atomic file writes.
*/

package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/bytehunt/pkg/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampedName(t *testing.T) {
	ts := time.Date(2024, 6, 11, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-11_01-30-00_bytehunt_abc.json", utils.TimestampedName(ts, "bytehunt", "abc", "json"))
	assert.Equal(t, "2024-06-11_01-30-00_bytehunt.yaml", utils.TimestampedName(ts, "bytehunt", "", "yaml"))
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, "run.json"), utils.ResolvePath(nil, dir, "run.json"))

	file := filepath.Join(dir, "report.json")
	assert.Equal(t, file, utils.ResolvePath(nil, file, "run.json"))
}

func TestResolvePathMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/reports", 0755))

	assert.Equal(t, "/reports/run.json", utils.ResolvePath(fs, "/reports", "run.json"))
	assert.Equal(t, "/other/out.json", utils.ResolvePath(fs, "/other/out.json", "run.json"))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.json")

	require.NoError(t, utils.WriteFileAtomic(afero.NewOsFs(), path, []byte("first")))
	require.NoError(t, utils.WriteFileAtomic(nil, path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriteFileAtomicMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, utils.WriteFileAtomic(fs, "/out/dir/report.json", []byte("first")))
	require.NoError(t, utils.WriteFileAtomic(fs, "/out/dir/report.json", []byte("second")))

	data, err := afero.ReadFile(fs, "/out/dir/report.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	exists, err := afero.Exists(fs, "/out/dir/report.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}
