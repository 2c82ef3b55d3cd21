package scene

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat     = errors.New("unsupported format")
	ErrIO                    = errors.New("io failure")
	ErrParse                 = errors.New("cannot parse")
	ErrIncompatibleVersion   = errors.New("incompatible version")
	ErrEmptyShape            = errors.New("empty shape")
	ErrUnknownPreset         = errors.New("unknown preset")
	ErrDependentResource     = errors.New("dependent resource failure")
	ErrTextureFormatMismatch = errors.New("texture format mismatch")
)

// IOError records a filesystem failure on Path. Op is one of open, read,
// create, write or "create directory".
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot %s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// DependentError reports that a document could not be loaded or saved
// because one of the files it references failed.
type DependentError struct {
	Op   string
	Path string
	Err  error
}

func (e *DependentError) Error() string {
	return fmt.Sprintf("cannot %s %s since %v", e.Op, e.Path, e.Err)
}

func (e *DependentError) Unwrap() error { return e.Err }

func (e *DependentError) Is(target error) bool { return target == ErrDependentResource }

// UnsupportedFormat returns the error for a path with an unknown extension.
func UnsupportedFormat(path string) error {
	return fmt.Errorf("%w %s", ErrUnsupportedFormat, path)
}

// ParseError returns the error for a malformed file.
func ParseError(path string, err error) error {
	if err == nil {
		return fmt.Errorf("%w %s", ErrParse, path)
	}
	return fmt.Errorf("%w %s: %w", ErrParse, path, err)
}

// EmptyShape returns the error for a mesh file with no elements.
func EmptyShape(path string) error {
	return fmt.Errorf("%w %s", ErrEmptyShape, path)
}
