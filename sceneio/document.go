package sceneio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"cogentcore.org/core/ordmap"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/ddvk/sceneio/imageio"
	"github.com/ddvk/sceneio/scene"
)

// Version is written to every saved document.
const Version = "4.2"

// Generator identifies the writer in the asset block.
const Generator = "sceneio"

// SupportedVersions are the asset versions accepted on load. They share
// one layout.
var SupportedVersions = []string{"4.2", "5.0"}

// shape kinds in the document
const (
	shapeURI      = "uri"
	shapePoint    = "point"
	shapeLine     = "line"
	shapeTriangle = "triangle"
	shapeQuad     = "quad"
)

type assetJSON struct {
	Copyright string  `json:"copyright"`
	Generator string  `json:"generator"`
	Version   any     `json:"version"`
}

type cameraJSON struct {
	Name         string       `json:"name"`
	Frame        scene.Frame3 `json:"frame"`
	Orthographic bool         `json:"orthographic"`
	Lens         float32      `json:"lens"`
	Aspect       float32      `json:"aspect"`
	Film         float32      `json:"film"`
	Focus        float32      `json:"focus"`
	Aperture     float32      `json:"aperture"`
}

type textureJSON struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type materialJSON struct {
	Name          string             `json:"name"`
	Type          scene.MaterialType `json:"type"`
	Emission      mgl32.Vec3         `json:"emission"`
	Color         mgl32.Vec3         `json:"color"`
	Metallic      float32            `json:"metallic"`
	Roughness     float32            `json:"roughness"`
	IOR           float32            `json:"ior"`
	TrDepth       float32            `json:"trdepth"`
	Scattering    mgl32.Vec3         `json:"scattering"`
	ScAnisotropy  float32            `json:"scanisotropy"`
	Opacity       float32            `json:"opacity"`
	EmissionTex   int                `json:"emission_tex"`
	ColorTex      int                `json:"color_tex"`
	RoughnessTex  int                `json:"roughness_tex"`
	ScatteringTex int                `json:"scattering_tex"`
	NormalTex     int                `json:"normal_tex"`
}

type shapeJSON struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	URI        string     `json:"uri"`
	BorderSize float32    `json:"border_size"`
	Position   mgl32.Vec3 `json:"position"`
	Radius     *float32   `json:"radius"`
	Position1  mgl32.Vec3 `json:"position1"`
	Position2  mgl32.Vec3 `json:"position2"`
	Position3  mgl32.Vec3 `json:"position3"`
	Position4  mgl32.Vec3 `json:"position4"`
	Radius1    *float32   `json:"radius1"`
	Radius2    *float32   `json:"radius2"`
	Arrow1     *bool      `json:"arrow1"`
	Arrow2     *bool      `json:"arrow2"`
}

type instanceJSON struct {
	Name           string       `json:"name"`
	Frame          scene.Frame3 `json:"frame"`
	Shape          int          `json:"shape"`
	Material       int          `json:"material"`
	BorderMaterial int          `json:"border_material"`
}

// document is a parsed container before its side files are resolved.
type document struct {
	scene *scene.Scene

	// per shape: inline shapes are complete, the others load shapeURIs
	shapeInline []bool
	shapeURIs   []string
	shapeBorder []float32
	textureURIs []string
}

var knownGroups = map[string]bool{
	"asset":     true,
	"cameras":   true,
	"textures":  true,
	"materials": true,
	"shapes":    true,
	"instances": true,
}

func checkVersion(path string, raw json.RawMessage) error {
	if raw == nil {
		return fmt.Errorf("%w %s: missing asset", scene.ErrIncompatibleVersion, path)
	}
	var asset assetJSON
	if err := json.Unmarshal(raw, &asset); err != nil {
		return scene.ParseError(path, err)
	}
	if asset.Version == nil {
		return fmt.Errorf("%w %s: missing version", scene.ErrIncompatibleVersion, path)
	}
	version, ok := asset.Version.(string)
	if !ok {
		return fmt.Errorf("%w %s: version %v is not a string", scene.ErrIncompatibleVersion, path, asset.Version)
	}
	for _, v := range SupportedVersions {
		if version == v {
			return nil
		}
	}
	return fmt.Errorf("%w %s: version %q", scene.ErrIncompatibleVersion, path, version)
}

// decodeGroup unmarshals every element of a group over a copy of def, so
// absent fields keep their default.
func decodeGroup[T any](raw json.RawMessage, def T, fn func(T)) error {
	if raw == nil {
		return nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return err
	}
	for _, element := range elements {
		value := def
		if err := json.Unmarshal(element, &value); err != nil {
			return err
		}
		fn(value)
	}
	return nil
}

// parseDocument decodes the container at path. Inline shapes are built
// here; referenced files are only recorded.
func parseDocument(path string, data []byte, logger *log.Entry) (*document, error) {
	var groups map[string]json.RawMessage
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, scene.ParseError(path, err)
	}
	if err := checkVersion(path, groups["asset"]); err != nil {
		return nil, err
	}
	for key := range groups {
		if !knownGroups[key] {
			logger.WithField("group", key).Warn("skipping unknown group")
		}
	}

	s := &scene.Scene{}
	doc := &document{scene: s}

	var asset assetJSON
	if err := json.Unmarshal(groups["asset"], &asset); err != nil {
		return nil, scene.ParseError(path, err)
	}
	s.Copyright = asset.Copyright

	camera := scene.NewCamera()
	err := decodeGroup(groups["cameras"], cameraJSON{
		Frame:        camera.Frame,
		Orthographic: camera.Orthographic,
		Lens:         camera.Lens,
		Aspect:       camera.Aspect,
		Film:         camera.Film,
		Focus:        camera.Focus,
		Aperture:     camera.Aperture,
	}, func(c cameraJSON) {
		s.Cameras = append(s.Cameras, scene.Camera{
			Frame:        c.Frame,
			Orthographic: c.Orthographic,
			Lens:         c.Lens,
			Aspect:       c.Aspect,
			Film:         c.Film,
			Focus:        c.Focus,
			Aperture:     c.Aperture,
		})
		s.CameraNames = append(s.CameraNames, c.Name)
	})
	if err != nil {
		return nil, scene.ParseError(path, fmt.Errorf("cameras: %w", err))
	}

	err = decodeGroup(groups["textures"], textureJSON{}, func(t textureJSON) {
		s.Textures = append(s.Textures, scene.Texture{})
		s.TextureNames = append(s.TextureNames, t.Name)
		doc.textureURIs = append(doc.textureURIs, t.URI)
	})
	if err != nil {
		return nil, scene.ParseError(path, fmt.Errorf("textures: %w", err))
	}

	err = decodeGroup(groups["materials"], materialToJSON("", scene.NewMaterial()), func(m materialJSON) {
		s.Materials = append(s.Materials, scene.Material{
			Type:          m.Type,
			Emission:      m.Emission,
			Color:         m.Color,
			Roughness:     m.Roughness,
			Metallic:      m.Metallic,
			IOR:           m.IOR,
			Scattering:    m.Scattering,
			ScAnisotropy:  m.ScAnisotropy,
			TrDepth:       m.TrDepth,
			Opacity:       m.Opacity,
			EmissionTex:   m.EmissionTex,
			ColorTex:      m.ColorTex,
			RoughnessTex:  m.RoughnessTex,
			ScatteringTex: m.ScatteringTex,
			NormalTex:     m.NormalTex,
		})
		s.MaterialNames = append(s.MaterialNames, m.Name)
	})
	if err != nil {
		return nil, scene.ParseError(path, fmt.Errorf("materials: %w", err))
	}

	err = decodeGroup(groups["shapes"], shapeJSON{}, func(js shapeJSON) {
		shape, inline := inlineShape(js, logger)
		s.Shapes = append(s.Shapes, shape)
		s.ShapeNames = append(s.ShapeNames, js.Name)
		doc.shapeInline = append(doc.shapeInline, inline)
		doc.shapeURIs = append(doc.shapeURIs, js.URI)
		doc.shapeBorder = append(doc.shapeBorder, js.BorderSize)
	})
	if err != nil {
		return nil, scene.ParseError(path, fmt.Errorf("shapes: %w", err))
	}

	instance := scene.NewInstance()
	err = decodeGroup(groups["instances"], instanceJSON{
		Frame:          instance.Frame,
		Shape:          instance.Shape,
		Material:       instance.Material,
		BorderMaterial: instance.BorderMaterial,
	}, func(i instanceJSON) {
		s.Instances = append(s.Instances, scene.Instance{
			Frame:          i.Frame,
			Shape:          i.Shape,
			Material:       i.Material,
			BorderMaterial: i.BorderMaterial,
		})
		s.InstanceNames = append(s.InstanceNames, i.Name)
	})
	if err != nil {
		return nil, scene.ParseError(path, fmt.Errorf("instances: %w", err))
	}

	s.CameraNames = dropEmptyNames(s.CameraNames)
	s.TextureNames = dropEmptyNames(s.TextureNames)
	s.MaterialNames = dropEmptyNames(s.MaterialNames)
	s.ShapeNames = dropEmptyNames(s.ShapeNames)
	s.InstanceNames = dropEmptyNames(s.InstanceNames)
	return doc, nil
}

// dropEmptyNames returns nil when no element of a group is named, the same
// as a scene built without names.
func dropEmptyNames(names []string) []string {
	for _, name := range names {
		if name != "" {
			return names
		}
	}
	return nil
}

// inlineShape builds the analytic shape forms. Any other type references
// a mesh file and yields an empty shape and inline false.
func inlineShape(js shapeJSON, logger *log.Entry) (scene.Shape, bool) {
	var shape scene.Shape
	switch js.Type {
	case shapePoint:
		shape.Positions = []mgl32.Vec3{js.Position}
		if js.Radius != nil {
			shape.Radius = []float32{*js.Radius}
		}
		shape.Points = []int{0}
	case shapeLine:
		shape.Positions = []mgl32.Vec3{js.Position1, js.Position2}
		if js.Radius1 != nil || js.Radius2 != nil {
			shape.Radius = []float32{valueOr(js.Radius1, scene.DefaultRadius), valueOr(js.Radius2, scene.DefaultRadius)}
		}
		if js.Arrow1 != nil || js.Arrow2 != nil {
			shape.Ends = []scene.LineEnd{lineEnd(js.Arrow1), lineEnd(js.Arrow2)}
		}
		shape.Lines = [][2]int{{0, 1}}
	case shapeTriangle:
		shape.Positions = []mgl32.Vec3{js.Position1, js.Position2, js.Position3}
		shape.Triangles = [][3]int{{0, 1, 2}}
		shape.BorderRadius = js.BorderSize
	case shapeQuad:
		shape.Positions = []mgl32.Vec3{js.Position1, js.Position2, js.Position3, js.Position4}
		shape.Quads = [][4]int{{0, 1, 2, 3}}
		shape.BorderRadius = js.BorderSize
	default:
		if js.Type != "" && js.Type != shapeURI {
			logger.WithField("type", js.Type).Warn("unknown shape type, reading uri")
		}
		return shape, false
	}
	return shape, true
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func lineEnd(arrow *bool) scene.LineEnd {
	if arrow != nil && *arrow {
		return scene.Arrow
	}
	return scene.Cap
}

func materialToJSON(name string, m scene.Material) materialJSON {
	return materialJSON{
		Name:          name,
		Type:          m.Type,
		Emission:      m.Emission,
		Color:         m.Color,
		Metallic:      m.Metallic,
		Roughness:     m.Roughness,
		IOR:           m.IOR,
		TrDepth:       m.TrDepth,
		Scattering:    m.Scattering,
		ScAnisotropy:  m.ScAnisotropy,
		Opacity:       m.Opacity,
		EmissionTex:   m.EmissionTex,
		ColorTex:      m.ColorTex,
		RoughnessTex:  m.RoughnessTex,
		ScatteringTex: m.ScatteringTex,
		NormalTex:     m.NormalTex,
	}
}

// object is a JSON object that keeps its keys in insertion order.
type object struct {
	*ordmap.Map[string, any]
}

func newObject() object {
	return object{ordmap.New[string, any]()}
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range o.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(kv.Key))
		buf.WriteByte(':')
		value, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kv.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// setVal adds key unless value equals the default.
func setVal[T comparable](o object, key string, value, def T) {
	if value == def {
		return
	}
	o.Add(key, value)
}

func elementName(names []string, idx int) string {
	if idx < len(names) {
		return names[idx]
	}
	return ""
}

// resourcePath is the document relative file a shape or texture is saved
// to: <kind>s/<name><ext>, or <kind>s/<kind><index><ext> when unnamed.
func resourcePath(names []string, idx int, kind, ext string) string {
	name := elementName(names, idx)
	if name == "" {
		name = kind + strconv.Itoa(idx)
	}
	return filepath.ToSlash(filepath.Join(kind+"s", name+ext))
}

func shapePaths(s *scene.Scene) []string {
	paths := make([]string, len(s.Shapes))
	for i := range s.Shapes {
		paths[i] = resourcePath(s.ShapeNames, i, "shape", ".ply")
	}
	return paths
}

func texturePaths(s *scene.Scene) []string {
	paths := make([]string, len(s.Textures))
	for i := range s.Textures {
		paths[i] = resourcePath(s.TextureNames, i, "texture", imageio.TextureExt(&s.Textures[i]))
	}
	return paths
}

// encodeDocument renders s as an indented document, eliding every field
// equal to its default.
func encodeDocument(s *scene.Scene, shapeFiles, textureFiles []string) ([]byte, error) {
	root := newObject()

	asset := newObject()
	setVal(asset, "copyright", s.Copyright, "")
	setVal(asset, "generator", Generator, "")
	setVal(asset, "version", Version, "")
	root.Add("asset", asset)

	if len(s.Cameras) != 0 {
		def := scene.NewCamera()
		group := make([]object, 0, len(s.Cameras))
		for i, camera := range s.Cameras {
			element := newObject()
			setVal(element, "name", elementName(s.CameraNames, i), "")
			setVal(element, "frame", camera.Frame, def.Frame)
			setVal(element, "orthographic", camera.Orthographic, def.Orthographic)
			setVal(element, "lens", camera.Lens, def.Lens)
			setVal(element, "aspect", camera.Aspect, def.Aspect)
			setVal(element, "film", camera.Film, def.Film)
			setVal(element, "focus", camera.Focus, def.Focus)
			setVal(element, "aperture", camera.Aperture, def.Aperture)
			group = append(group, element)
		}
		root.Add("cameras", group)
	}

	if len(s.Textures) != 0 {
		group := make([]object, 0, len(s.Textures))
		for i := range s.Textures {
			element := newObject()
			setVal(element, "name", elementName(s.TextureNames, i), "")
			setVal(element, "uri", textureFiles[i], "")
			group = append(group, element)
		}
		root.Add("textures", group)
	}

	if len(s.Materials) != 0 {
		def := materialToJSON("", scene.NewMaterial())
		group := make([]object, 0, len(s.Materials))
		for i, material := range s.Materials {
			m := materialToJSON(elementName(s.MaterialNames, i), material)
			element := newObject()
			setVal(element, "name", m.Name, "")
			setVal(element, "type", m.Type, def.Type)
			setVal(element, "emission", m.Emission, def.Emission)
			setVal(element, "color", m.Color, def.Color)
			setVal(element, "metallic", m.Metallic, def.Metallic)
			setVal(element, "roughness", m.Roughness, def.Roughness)
			setVal(element, "ior", m.IOR, def.IOR)
			setVal(element, "trdepth", m.TrDepth, def.TrDepth)
			setVal(element, "scattering", m.Scattering, def.Scattering)
			setVal(element, "scanisotropy", m.ScAnisotropy, def.ScAnisotropy)
			setVal(element, "opacity", m.Opacity, def.Opacity)
			setVal(element, "emission_tex", m.EmissionTex, def.EmissionTex)
			setVal(element, "color_tex", m.ColorTex, def.ColorTex)
			setVal(element, "roughness_tex", m.RoughnessTex, def.RoughnessTex)
			setVal(element, "scattering_tex", m.ScatteringTex, def.ScatteringTex)
			setVal(element, "normal_tex", m.NormalTex, def.NormalTex)
			group = append(group, element)
		}
		root.Add("materials", group)
	}

	if len(s.Shapes) != 0 {
		group := make([]object, 0, len(s.Shapes))
		for i, shape := range s.Shapes {
			element := newObject()
			setVal(element, "name", elementName(s.ShapeNames, i), "")
			setVal(element, "uri", shapeFiles[i], "")
			setVal(element, "border_size", shape.BorderRadius, 0)
			group = append(group, element)
		}
		root.Add("shapes", group)
	}

	if len(s.Instances) != 0 {
		def := scene.NewInstance()
		group := make([]object, 0, len(s.Instances))
		for i, instance := range s.Instances {
			element := newObject()
			setVal(element, "name", elementName(s.InstanceNames, i), "")
			setVal(element, "frame", instance.Frame, def.Frame)
			setVal(element, "shape", instance.Shape, def.Shape)
			setVal(element, "material", instance.Material, def.Material)
			setVal(element, "border_material", instance.BorderMaterial, def.BorderMaterial)
			group = append(group, element)
		}
		root.Add("instances", group)
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

