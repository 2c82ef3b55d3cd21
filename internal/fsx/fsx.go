// Package fsx wraps the filesystem calls used by the codecs so that every
// failure is reported as a *scene.IOError naming the path and direction.
package fsx

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ddvk/sceneio/scene"
)

// ReadFile returns the whole content of path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scene.IOError{Op: "open", Path: path, Err: err}
	}
	return data, nil
}

// WriteFile writes the output of fn to path. Data goes to a temporary file
// in the same directory first and is renamed over path only when fn and the
// flush succeed, so readers never observe a partial file.
func WriteFile(path string, fn func(w io.Writer) error) (err error) {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return &scene.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return
	}
	if err = bw.Flush(); err != nil {
		return &scene.IOError{Op: "write", Path: path, Err: err}
	}
	if err = f.Close(); err != nil {
		return &scene.IOError{Op: "write", Path: path, Err: err}
	}
	if err = os.Rename(tmp, path); err != nil {
		return &scene.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteBytes is WriteFile for an in-memory buffer.
func WriteBytes(path string, data []byte) error {
	return WriteFile(path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return &scene.IOError{Op: "write", Path: path, Err: err}
		}
		return nil
	})
}

// MkdirAll creates dir and its parents. An empty dir is the current
// directory and needs nothing.
func MkdirAll(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &scene.IOError{Op: "create directory", Path: dir, Err: err}
	}
	return nil
}
