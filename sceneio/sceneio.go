// Package sceneio reads and writes scene documents together with the mesh
// and texture files they reference.
package sceneio

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ddvk/sceneio/format"
	"github.com/ddvk/sceneio/imageio"
	"github.com/ddvk/sceneio/internal/fsx"
	"github.com/ddvk/sceneio/internal/parallel"
	"github.com/ddvk/sceneio/preset"
	"github.com/ddvk/sceneio/scene"
)

func (o *options) run(n int, fn func(i int) error) error {
	if o.sequential {
		return parallel.Sequential(n, fn)
	}
	return parallel.For(n, o.workers, fn)
}

func resolve(dir, uri string) string {
	return filepath.Join(dir, filepath.FromSlash(uri))
}

// LoadScene reads the document at path, loads every referenced shape and
// texture, and repairs the result. On failure no partial scene is
// returned.
func LoadScene(path string, opts ...Option) (*scene.Scene, error) {
	o := newOptions(opts)
	logger := o.operation("load", path)
	start := time.Now()

	if _, err := format.LookupKind(path, format.KindDocument); err != nil {
		return nil, err
	}
	data, err := fsx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(path, data, logger)
	if err != nil {
		return nil, err
	}
	s := doc.scene

	dir := filepath.Dir(path)
	nshapes := len(s.Shapes)
	err = o.run(nshapes+len(s.Textures), func(i int) error {
		if i < nshapes {
			if doc.shapeInline[i] {
				return nil
			}
			if doc.shapeURIs[i] == "" {
				return fmt.Errorf("%w: shape %s has no uri", scene.ErrEmptyShape, s.ShapeName(i))
			}
			file := resolve(dir, doc.shapeURIs[i])
			logger.WithFields(log.Fields{"index": i, "resource": "shape", "file": file}).Debug("loading")
			shape, err := LoadShape(file, opts...)
			if err != nil {
				return err
			}
			shape.BorderRadius = doc.shapeBorder[i]
			s.Shapes[i] = *shape
			return nil
		}
		idx := i - nshapes
		file := resolve(dir, doc.textureURIs[idx])
		logger.WithFields(log.Fields{"index": idx, "resource": "texture", "file": file}).Debug("loading")
		texture, err := imageio.LoadTexture(file)
		if err != nil {
			return err
		}
		s.Textures[idx] = *texture
		return nil
	})
	if err != nil {
		return nil, &scene.DependentError{Op: "load", Path: path, Err: err}
	}

	scene.Repair(s)
	logger.WithFields(log.Fields{
		"cameras":   len(s.Cameras),
		"textures":  len(s.Textures),
		"materials": len(s.Materials),
		"shapes":    len(s.Shapes),
		"instances": len(s.Instances),
		"elapsed":   time.Since(start),
	}).Info("scene loaded")
	return s, nil
}

// MakeSceneDirectories creates the directory of path, and the shapes and
// textures directories next to it when the scene needs them.
func MakeSceneDirectories(path string, s *scene.Scene) error {
	dir := filepath.Dir(path)
	if err := fsx.MkdirAll(dir); err != nil {
		return err
	}
	if len(s.Shapes) != 0 {
		if err := fsx.MkdirAll(filepath.Join(dir, "shapes")); err != nil {
			return err
		}
	}
	if len(s.Textures) != 0 {
		if err := fsx.MkdirAll(filepath.Join(dir, "textures")); err != nil {
			return err
		}
	}
	return nil
}

// SaveScene writes the shapes and textures of s under the directory of
// path and then the document itself.
func SaveScene(path string, s *scene.Scene, opts ...Option) error {
	o := newOptions(opts)
	logger := o.operation("save", path)
	start := time.Now()

	if _, err := format.LookupKind(path, format.KindDocument); err != nil {
		return err
	}
	if err := MakeSceneDirectories(path, s); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	shapeFiles := shapePaths(s)
	textureFiles := texturePaths(s)
	nshapes := len(s.Shapes)
	err := o.run(nshapes+len(s.Textures), func(i int) error {
		if i < nshapes {
			file := resolve(dir, shapeFiles[i])
			logger.WithFields(log.Fields{"index": i, "resource": "shape", "file": file}).Debug("saving")
			return SaveShape(file, &s.Shapes[i], opts...)
		}
		idx := i - nshapes
		file := resolve(dir, textureFiles[idx])
		logger.WithFields(log.Fields{"index": idx, "resource": "texture", "file": file}).Debug("saving")
		return imageio.SaveTexture(file, &s.Textures[idx])
	})
	if err != nil {
		if errors.Is(err, scene.ErrTextureFormatMismatch) {
			return err
		}
		return &scene.DependentError{Op: "save", Path: path, Err: err}
	}

	data, err := encodeDocument(s, shapeFiles, textureFiles)
	if err != nil {
		return &scene.IOError{Op: "write", Path: path, Err: err}
	}
	if err := fsx.WriteBytes(path, data); err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"shapes":   len(s.Shapes),
		"textures": len(s.Textures),
		"elapsed":  time.Since(start),
	}).Info("scene saved")
	return nil
}

// LoadImage loads an image file or preset.
func LoadImage(path string) (*scene.Image, error) { return imageio.LoadImage(path) }

// SaveImage writes an image file.
func SaveImage(path string, img *scene.Image) error { return imageio.SaveImage(path, img) }

// LoadTexture loads a texture file or preset.
func LoadTexture(path string) (*scene.Texture, error) { return imageio.LoadTexture(path) }

// SaveTexture writes a texture file.
func SaveTexture(path string, texture *scene.Texture) error {
	return imageio.SaveTexture(path, texture)
}

// MakeImagePreset generates the named preset at its catalog size.
func MakeImagePreset(name string) (*scene.Image, error) { return preset.Image(name) }

// MakeTexturePreset generates the named preset as a texture.
func MakeTexturePreset(name string) (*scene.Texture, error) { return preset.Texture(name) }

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func MustLoadScene(path string, opts ...Option) *scene.Scene {
	return must(LoadScene(path, opts...))
}

func MustSaveScene(path string, s *scene.Scene, opts ...Option) {
	mustDo(SaveScene(path, s, opts...))
}

func MustLoadShape(path string, opts ...Option) *scene.Shape {
	return must(LoadShape(path, opts...))
}

func MustSaveShape(path string, shape *scene.Shape, opts ...Option) {
	mustDo(SaveShape(path, shape, opts...))
}

func MustLoadImage(path string) *scene.Image { return must(LoadImage(path)) }

func MustSaveImage(path string, img *scene.Image) { mustDo(SaveImage(path, img)) }

func MustLoadTexture(path string) *scene.Texture { return must(LoadTexture(path)) }

func MustSaveTexture(path string, texture *scene.Texture) {
	mustDo(SaveTexture(path, texture))
}

func MustMakeImagePreset(name string) *scene.Image { return must(MakeImagePreset(name)) }

func MustMakeTexturePreset(name string) *scene.Texture { return must(MakeTexturePreset(name)) }
