package scene

import (
	"fmt"
	"strconv"
)

func elementName(prefix string, idx, size int) string {
	width := len(strconv.Itoa(size + 1))
	return fmt.Sprintf("%s%0*d", prefix, width, idx+1)
}

func lookupName(names []string, prefix string, idx, size int) string {
	if idx < 0 || idx >= size {
		return ""
	}
	if idx < len(names) && names[idx] != "" {
		return names[idx]
	}
	return elementName(prefix, idx, size)
}

// CameraName returns the display name of camera idx, synthesizing one
// such as "camera01" when the scene does not name it.
func (s *Scene) CameraName(idx int) string {
	return lookupName(s.CameraNames, "camera", idx, len(s.Cameras))
}

func (s *Scene) TextureName(idx int) string {
	return lookupName(s.TextureNames, "texture", idx, len(s.Textures))
}

func (s *Scene) MaterialName(idx int) string {
	return lookupName(s.MaterialNames, "material", idx, len(s.Materials))
}

func (s *Scene) ShapeName(idx int) string {
	return lookupName(s.ShapeNames, "shape", idx, len(s.Shapes))
}

func (s *Scene) InstanceName(idx int) string {
	return lookupName(s.InstanceNames, "instance", idx, len(s.Instances))
}
