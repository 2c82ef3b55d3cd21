package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis aligned box. The zero value is not empty; use
// EmptyBounds as the identity for Expand.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b Bounds) Expand(p mgl32.Vec3) Bounds {
	for k := 0; k < 3; k++ {
		b.Min[k] = math32.Min(b.Min[k], p[k])
		b.Max[k] = math32.Max(b.Max[k], p[k])
	}
	return b
}

func (b Bounds) Center() mgl32.Vec3 {
	return b.Max.Add(b.Min).Mul(0.5)
}

// Radius is half the diagonal.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// Bounds returns the world space box of every instanced shape.
func (s *Scene) Bounds() Bounds {
	bbox := EmptyBounds()
	for _, instance := range s.Instances {
		if instance.Shape < 0 || instance.Shape >= len(s.Shapes) {
			continue
		}
		for _, p := range s.Shapes[instance.Shape].Positions {
			bbox = bbox.Expand(instance.Frame.TransformPoint(p))
		}
	}
	return bbox
}
