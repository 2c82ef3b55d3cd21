// Package imageio loads and saves images and textures, dispatching on the
// file extension. Paths with the .ypreset extension are not opened: their
// stem names a procedural preset.
package imageio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ddvk/sceneio/format"
	"github.com/ddvk/sceneio/internal/colorspace"
	"github.com/ddvk/sceneio/internal/fsx"
	"github.com/ddvk/sceneio/preset"
	"github.com/ddvk/sceneio/scene"
)

// decode reads path and runs the codec for its format.
func decode(path string, f format.Format) (*scene.Texture, error) {
	codec, ok := lookupCodec(f)
	if !ok {
		return nil, scene.ParseError(path, fmt.Errorf("%w for %s", errNoCodec, f))
	}
	data, err := fsx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, scene.ParseError(path, err)
	}
	raw.Linear = f.Linear()
	return raw, nil
}

func encode(path string, f format.Format, raw *scene.Texture) error {
	codec, ok := lookupCodec(f)
	if !ok {
		return scene.UnsupportedFormat(path)
	}
	return fsx.WriteFile(path, func(w io.Writer) error {
		if err := codec.Encode(w, raw); err != nil {
			return &scene.IOError{Op: "write", Path: path, Err: err}
		}
		return nil
	})
}

// LoadImage loads an image. Pixels are always linear; Linear reports
// whether the file stored linear values.
func LoadImage(path string) (*scene.Image, error) {
	f, err := format.LookupKind(path, format.KindImage)
	if err != nil {
		return nil, err
	}
	if f == format.Preset {
		return preset.Image(format.PresetName(path))
	}
	raw, err := decode(path, f)
	if err != nil {
		return nil, err
	}
	img := &scene.Image{Width: raw.Width, Height: raw.Height, Linear: raw.Linear}
	if raw.Linear {
		img.Pixels = raw.PixelsF
		return img, nil
	}
	img.Pixels = make([]mgl32.Vec4, len(raw.PixelsB))
	for k, c := range raw.PixelsB {
		img.Pixels[k] = colorspace.DecodeByte(c)
	}
	return img, nil
}

// SaveImage writes img, converting its linear pixels to encoded bytes when
// the format requires it.
func SaveImage(path string, img *scene.Image) error {
	f, err := format.LookupKind(path, format.KindImage)
	if err != nil {
		return err
	}
	if f == format.Preset {
		return scene.UnsupportedFormat(path)
	}
	raw := &scene.Texture{Width: img.Width, Height: img.Height, Linear: f.Linear()}
	if f.Linear() {
		raw.PixelsF = img.Pixels
	} else {
		raw.PixelsB = make([][4]uint8, len(img.Pixels))
		for k, c := range img.Pixels {
			raw.PixelsB[k] = colorspace.EncodeByte(c)
		}
	}
	return encode(path, f, raw)
}

// LoadTexture loads a texture keeping the file representation: float
// pixels for linear formats, encoded bytes otherwise.
func LoadTexture(path string) (*scene.Texture, error) {
	f, err := format.LookupKind(path, format.KindImage)
	if err != nil {
		return nil, err
	}
	if f == format.Preset {
		return preset.Texture(format.PresetName(path))
	}
	return decode(path, f)
}

// SaveTexture writes a texture without converting its pixels. Saving float
// pixels to an encoded format, or bytes to a linear one, fails with
// scene.ErrTextureFormatMismatch.
func SaveTexture(path string, texture *scene.Texture) error {
	f, err := format.LookupKind(path, format.KindImage)
	if err != nil {
		return err
	}
	if f == format.Preset {
		return scene.UnsupportedFormat(path)
	}
	if f.Linear() && len(texture.PixelsF) == 0 || f.Encoded() && len(texture.PixelsB) == 0 {
		return fmt.Errorf("%w %s", scene.ErrTextureFormatMismatch, path)
	}
	return encode(path, f, texture)
}

// TextureExt returns the extension a texture should be saved with.
func TextureExt(texture *scene.Texture) string {
	if len(texture.PixelsF) == 0 {
		return ".png"
	}
	return ".hdr"
}
