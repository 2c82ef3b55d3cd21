// Package format maps file extensions to the codec that handles them.
package format

import (
	"path/filepath"
	"strings"

	"github.com/ddvk/sceneio/scene"
)

type Format int

const (
	Unknown Format = iota
	PNG
	JPEG
	BMP
	TGA
	HDR
	EXR
	Preset
	PLY
	OBJ
	STL
	CPP
	JSON
)

type Kind int

const (
	KindNone Kind = iota
	KindImage
	KindMesh
	KindDocument
)

type info struct {
	name   string
	kind   Kind
	linear bool
}

var formats = map[Format]info{
	PNG:    {"png", KindImage, false},
	JPEG:   {"jpeg", KindImage, false},
	BMP:    {"bmp", KindImage, false},
	TGA:    {"tga", KindImage, false},
	HDR:    {"hdr", KindImage, true},
	EXR:    {"exr", KindImage, true},
	Preset: {"ypreset", KindImage, false},
	PLY:    {"ply", KindMesh, false},
	OBJ:    {"obj", KindMesh, false},
	STL:    {"stl", KindMesh, false},
	CPP:    {"cpp", KindMesh, false},
	JSON:   {"json", KindDocument, false},
}

var extensions = map[string]Format{
	".png":     PNG,
	".jpg":     JPEG,
	".jpeg":    JPEG,
	".bmp":     BMP,
	".tga":     TGA,
	".hdr":     HDR,
	".exr":     EXR,
	".ypreset": Preset,
	".ply":     PLY,
	".obj":     OBJ,
	".stl":     STL,
	".cpp":     CPP,
	".json":    JSON,
}

func (f Format) String() string {
	if i, ok := formats[f]; ok {
		return i.name
	}
	return "unknown"
}

func (f Format) Kind() Kind {
	return formats[f].kind
}

// Linear reports whether the format stores linear float pixels.
func (f Format) Linear() bool {
	return formats[f].linear
}

// Encoded reports whether the format stores sRGB encoded byte pixels.
func (f Format) Encoded() bool {
	switch f {
	case PNG, JPEG, BMP, TGA:
		return true
	}
	return false
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Lookup returns the format of path or an unsupported format error naming
// the path.
func Lookup(path string) (Format, error) {
	f, ok := extensions[Ext(path)]
	if !ok {
		return Unknown, scene.UnsupportedFormat(path)
	}
	return f, nil
}

// LookupKind is Lookup restricted to formats of the given kind.
func LookupKind(path string, kind Kind) (Format, error) {
	f, err := Lookup(path)
	if err != nil {
		return f, err
	}
	if f.Kind() != kind {
		return Unknown, scene.UnsupportedFormat(path)
	}
	return f, nil
}

// PresetName returns the preset a path names: its base name without
// extension, case preserved.
func PresetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
