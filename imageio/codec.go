package imageio

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/ddvk/sceneio/format"
	"github.com/ddvk/sceneio/scene"
)

// JPEGQuality is used for every JPEG written.
const JPEGQuality = 75

// Codec converts between a file stream and a raw raster. Linear codecs
// fill and consume PixelsF; encoded codecs fill and consume PixelsB.
type Codec struct {
	Decode func(r io.Reader) (*scene.Texture, error)
	Encode func(w io.Writer, raw *scene.Texture) error
}

var errNoCodec = errors.New("no codec registered")

var (
	codecsMu sync.RWMutex
	codecs   = map[format.Format]Codec{
		format.PNG: byteCodec(
			png.Decode,
			png.Encode,
		),
		format.JPEG: byteCodec(
			jpeg.Decode,
			func(w io.Writer, m image.Image) error {
				return jpeg.Encode(w, m, &jpeg.Options{Quality: JPEGQuality})
			},
		),
		format.BMP: byteCodec(bmp.Decode, bmp.Encode),
		format.TGA: byteCodec(tga.Decode, tga.Encode),
		format.HDR: {Decode: decodeHDR, Encode: encodeHDR},
	}
)

// RegisterCodec installs or replaces the codec for an image format. EXR
// has no built-in codec and must be registered before use.
func RegisterCodec(f format.Format, c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[f] = c
}

func lookupCodec(f format.Format) (Codec, bool) {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	c, ok := codecs[f]
	return c, ok
}

func byteCodec(decode func(io.Reader) (image.Image, error), encode func(io.Writer, image.Image) error) Codec {
	return Codec{
		Decode: func(r io.Reader) (*scene.Texture, error) {
			m, err := decode(r)
			if err != nil {
				return nil, err
			}
			return fromNRGBA(toNRGBA(m)), nil
		},
		Encode: func(w io.Writer, raw *scene.Texture) error {
			return encode(w, toImage(raw))
		},
	}
}

// toNRGBA converts any decoded image to 8-bit non premultiplied RGBA.
func toNRGBA(m image.Image) *image.NRGBA {
	if n, ok := m.(*image.NRGBA); ok {
		return n
	}
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}

func fromNRGBA(m *image.NRGBA) *scene.Texture {
	b := m.Bounds()
	raw := &scene.Texture{
		Width:   b.Dx(),
		Height:  b.Dy(),
		PixelsB: make([][4]uint8, b.Dx()*b.Dy()),
	}
	for j := 0; j < raw.Height; j++ {
		row := m.Pix[j*m.Stride:]
		for i := 0; i < raw.Width; i++ {
			copy(raw.PixelsB[j*raw.Width+i][:], row[i*4:i*4+4])
		}
	}
	return raw
}

func toImage(raw *scene.Texture) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	for k, c := range raw.PixelsB {
		copy(m.Pix[k*4:k*4+4], c[:])
	}
	return m
}

func decodeHDR(r io.Reader) (*scene.Texture, error) {
	m, err := rgbe.Decode(r)
	if err != nil {
		return nil, err
	}
	src, ok := m.(hdr.Image)
	if !ok {
		return nil, errors.New("not a high dynamic range image")
	}
	b := src.Bounds()
	raw := &scene.Texture{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Linear:  true,
		PixelsF: make([]mgl32.Vec4, b.Dx()*b.Dy()),
	}
	for j := 0; j < raw.Height; j++ {
		for i := 0; i < raw.Width; i++ {
			cr, cg, cb, _ := src.HDRAt(b.Min.X+i, b.Min.Y+j).HDRRGBA()
			raw.PixelsF[j*raw.Width+i] = mgl32.Vec4{float32(cr), float32(cg), float32(cb), 1}
		}
	}
	return raw, nil
}

func encodeHDR(w io.Writer, raw *scene.Texture) error {
	m := hdr.NewRGB(image.Rect(0, 0, raw.Width, raw.Height))
	for k, c := range raw.PixelsF {
		m.SetRGB(k%raw.Width, k/raw.Width, hdrcolor.RGB{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])})
	}
	return rgbe.Encode(w, m)
}
