package scene

import "fmt"

// MaterialType selects the shading model of a material.
type MaterialType uint8

const (
	Matte MaterialType = iota
	Glossy
	Reflective
	Transparent
	Refractive
	Subsurface
	Volumetric
	GltfPbr
)

var materialTypeNames = [...]string{
	Matte:       "matte",
	Glossy:      "glossy",
	Reflective:  "reflective",
	Transparent: "transparent",
	Refractive:  "refractive",
	Subsurface:  "subsurface",
	Volumetric:  "volumetric",
	GltfPbr:     "gltfpbr",
}

func (t MaterialType) String() string {
	if int(t) < len(materialTypeNames) {
		return materialTypeNames[t]
	}
	return fmt.Sprintf("MaterialType(%d)", t)
}

// ParseMaterialType maps a document name to its MaterialType.
func ParseMaterialType(name string) (MaterialType, error) {
	for i, n := range materialTypeNames {
		if n == name {
			return MaterialType(i), nil
		}
	}
	return Matte, fmt.Errorf("%w: unknown material type %q", ErrParse, name)
}

func (t MaterialType) MarshalText() ([]byte, error) {
	if int(t) >= len(materialTypeNames) {
		return nil, fmt.Errorf("unknown material type %d", t)
	}
	return []byte(materialTypeNames[t]), nil
}

func (t *MaterialType) UnmarshalText(text []byte) (err error) {
	*t, err = ParseMaterialType(string(text))
	return
}
