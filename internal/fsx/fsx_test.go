package fsx

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddvk/sceneio/scene"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, WriteBytes(path, []byte("hello")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestWriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := ReadFile(path)
	assert.ErrorIs(t, err, scene.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "cannot open "+path)
}

func TestCreateInMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "data.bin")
	err := WriteBytes(path, nil)
	assert.ErrorIs(t, err, scene.ErrIO)
	assert.Contains(t, err.Error(), "cannot create "+path)
}

func TestMkdirAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, MkdirAll(dir))
	assert.DirExists(t, dir)
	assert.NoError(t, MkdirAll(""))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, WriteBytes(file, nil))
	err := MkdirAll(filepath.Join(file, "sub"))
	assert.ErrorIs(t, err, scene.ErrIO)
}
