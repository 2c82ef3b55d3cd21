// Package preset generates the built-in procedural test images. A preset
// is selected by name; the same name always yields the same pixels.
package preset

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ddvk/sceneio/internal/colorspace"
	"github.com/ddvk/sceneio/scene"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

// raw is a generated raster before color normalization. Pixels hold
// encoded values unless linear is set.
type raw struct {
	width  int
	height int
	linear bool
	pixels []mgl32.Vec4
}

func newRaw(width, height int, linear bool) *raw {
	return &raw{width: width, height: height, linear: linear, pixels: make([]mgl32.Vec4, width*height)}
}

func (r *raw) at(i, j int) mgl32.Vec4     { return r.pixels[j*r.width+i] }
func (r *raw) set(i, j int, c mgl32.Vec4) { r.pixels[j*r.width+i] = c }

// shader maps a coordinate, scaled so the longest side spans [0,1), to a
// color.
type shader func(uv mgl32.Vec2) mgl32.Vec4

func procedural(width, height int, linear bool, fn shader) *raw {
	r := newRaw(width, height, linear)
	scale := 1 / float32(max(width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			r.set(i, j, fn(mgl32.Vec2{float32(i) * scale, float32(j) * scale}))
		}
	}
	return r
}

var (
	gray02      = mgl32.Vec4{0.2, 0.2, 0.2, 1}
	gray05      = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	black       = mgl32.Vec4{0, 0, 0, 1}
	white       = mgl32.Vec4{1, 1, 1, 1}
	transparent = mgl32.Vec4{0, 0, 0, 0}
)

type generator func(width, height int) *raw

var catalog map[string]generator

func init() {
	sky := func(sun bool) generator {
		return func(w, h int) *raw {
			return sunsky(w, h, mgl32.DegToRad(45), 3, sun, 1, 1, mgl32.Vec3{0.7, 0.7, 0.7})
		}
	}
	gridDefault := func(w, h int) *raw { return grid(w, h, 1, gray02, gray05) }
	checkerDefault := func(w, h int) *raw { return checker(w, h, 1, gray02, gray05) }
	bumpsDefault := func(w, h int) *raw { return bumps(w, h, 1, black, white) }
	noise := func(w, h int) *raw { return noisemap(w, h, 1) }
	fbm := func(w, h int) *raw { return fbmmap(w, h, 1) }

	catalog = map[string]generator{
		"grid":          gridDefault,
		"checker":       checkerDefault,
		"bumps":         bumpsDefault,
		"uvramp":        uvramp,
		"gammaramp":     gammaramp,
		"blackbodyramp": blackbodyramp,
		"uvgrid":        uvgrid,
		"colormapramp":  colormapramp,
		"sky":           sky(false),
		"sunsky":        sky(true),
		"noise":         noise,
		"fbm":           fbm,
		"ridge":         func(w, h int) *raw { return ridgemap(w, h, 1) },
		"turbulence":    func(w, h int) *raw { return turbulencemap(w, h, 1) },
		"bump-normal":   bumpsDefault,
		"images1": montage("grid", "uvgrid", "checker", "gammaramp",
			"bumps", "bump-normal", "noise", "fbm", "blackbodyramp"),
		"images2": montage("sky", "sunsky"),

		"test-floor":              func(w, h int) *raw { return addBorder(gridDefault(w, h), 0.0025) },
		"test-grid":               gridDefault,
		"test-checker":            checkerDefault,
		"test-bumps":              bumpsDefault,
		"test-uvramp":             uvramp,
		"test-gammaramp":          gammaramp,
		"test-blackbodyramp":      blackbodyramp,
		"test-colormapramp":       colormapramp,
		"test-uvgrid":             uvgrid,
		"test-sky":                sky(false),
		"test-sunsky":             sky(true),
		"test-noise":              noise,
		"test-fbm":                noise,
		"test-bumps-normal":       func(w, h int) *raw { return bumpToNormal(bumpsDefault(w, h), 0.05) },
		"test-bumps-displacement": bumpsDefault,
		"test-fbm-displacement":   fbm,
		"test-checker-opacity":    func(w, h int) *raw { return checker(w, h, 1, white, transparent) },
		"test-grid-opacity":       func(w, h int) *raw { return grid(w, h, 1, white, transparent) },
	}
}

// Names lists every preset in the catalog.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}

// Size returns the default dimensions of a preset: environment maps and
// their montages are twice as wide.
func Size(name string) (width, height int) {
	width, height = DefaultWidth, DefaultHeight
	if strings.Contains(name, "sky") || strings.Contains(name, "images2") {
		width = 2 * DefaultWidth
	}
	return
}

func generate(name string, width, height int) (*raw, error) {
	gen, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w %s", scene.ErrUnknownPreset, name)
	}
	return gen(width, height), nil
}

// montage places sub presets side by side at their default sizes; the
// canvas is as tall as the tallest.
func montage(names ...string) generator {
	return func(_, _ int) *raw {
		subs := make([]*raw, 0, len(names))
		width, height := 0, 0
		for _, name := range names {
			w, h := Size(name)
			sub := catalog[name](w, h)
			width += sub.width
			height = max(height, sub.height)
			subs = append(subs, sub)
		}
		out := newRaw(width, height, subs[0].linear)
		canvas := out.view()
		x := 0
		for _, sub := range subs {
			canvas.SetRegion(sub.view(), x, 0)
			x += sub.width
		}
		return out
	}
}

// view shares the pixels of r as an image without converting them.
func (r *raw) view() *scene.Image {
	return &scene.Image{Width: r.width, Height: r.height, Linear: r.linear, Pixels: r.pixels}
}

func (r *raw) image() *scene.Image {
	img := scene.NewImage(r.width, r.height, r.linear)
	for k, c := range r.pixels {
		if r.linear {
			img.Pixels[k] = c
		} else {
			img.Pixels[k] = colorspace.SRGBToLinearColor(c)
		}
	}
	return img
}

func (r *raw) texture() *scene.Texture {
	texture := &scene.Texture{Width: r.width, Height: r.height, Linear: r.linear}
	if r.linear {
		texture.PixelsF = append([]mgl32.Vec4(nil), r.pixels...)
		return texture
	}
	texture.PixelsB = make([][4]uint8, len(r.pixels))
	for k, c := range r.pixels {
		texture.PixelsB[k] = colorspace.FloatToByte(c)
	}
	return texture
}

// Image generates the named preset at its default size. Pixels are linear;
// Linear reports whether the pattern was defined in linear space.
func Image(name string) (*scene.Image, error) {
	width, height := Size(name)
	return ImageSize(name, width, height)
}

// ImageSize is Image at an explicit size. Montages ignore the size.
func ImageSize(name string, width, height int) (*scene.Image, error) {
	r, err := generate(name, width, height)
	if err != nil {
		return nil, err
	}
	return r.image(), nil
}

// Texture generates the named preset as a texture: float pixels for linear
// patterns, encoded bytes otherwise.
func Texture(name string) (*scene.Texture, error) {
	width, height := Size(name)
	return TextureSize(name, width, height)
}

// TextureSize is Texture at an explicit size.
func TextureSize(name string, width, height int) (*scene.Texture, error) {
	r, err := generate(name, width, height)
	if err != nil {
		return nil, err
	}
	return r.texture(), nil
}
