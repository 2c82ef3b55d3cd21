package preset

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func fract(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{v[0] - math32.Floor(v[0]), v[1] - math32.Floor(v[1])}
}

func lerp(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}

func grid(width, height int, scale float32, c0, c1 mgl32.Vec4) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		uv = fract(uv.Mul(4 * scale))
		const thick = 0.01 / 2
		line := uv[0] <= thick || uv[0] >= 1-thick || uv[1] <= thick || uv[1] >= 1-thick ||
			(uv[0] >= 0.5-thick && uv[0] <= 0.5+thick) ||
			(uv[1] >= 0.5-thick && uv[1] <= 0.5+thick)
		if line {
			return c0
		}
		return c1
	})
}

func checker(width, height int, scale float32, c0, c1 mgl32.Vec4) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		uv = uv.Mul(4 * scale)
		if (int(uv[0])+int(uv[1]))%2 == 0 {
			return c0
		}
		return c1
	})
}

func bumps(width, height int, scale float32, c0, c1 mgl32.Vec4) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		uv = fract(uv.Mul(4 * scale))
		const thick = 0.125
		center := mgl32.Vec2{0.75, 0.75}
		if uv[0] <= 0.5 {
			center[0] = 0.25
		}
		if uv[1] <= 0.5 {
			center[1] = 0.25
		}
		dist := clamp(uv.Sub(center).Len(), 0, thick) / thick
		var val float32
		if (uv[0] <= 0.5) != (uv[1] <= 0.5) {
			val = (1 + math32.Sqrt(1-dist)) / 2
		} else {
			val = dist * dist / 2
		}
		return lerp(c0, c1, val)
	})
}

func uvramp(width, height int) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		return mgl32.Vec4{uv[0], uv[1], 0, 1}
	})
}

func gammaramp(width, height int) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		var t float32
		switch {
		case uv[1] < 1.0/3.0:
			t = math32.Pow(uv[0], 2.2)
		case uv[1] < 2.0/3.0:
			t = uv[0]
		default:
			t = math32.Pow(uv[0], 1/2.2)
		}
		return lerp(black, white, t)
	})
}

func blackbodyramp(width, height int) *raw {
	return procedural(width, height, true, func(uv mgl32.Vec2) mgl32.Vec4 {
		rgb := blackbodyToRGB(1000 + (12000-1000)*uv[0])
		return rgb.Vec4(1)
	})
}

func uvgrid(width, height int) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		uv[1] = 1 - uv[1]
		tileU := int(clamp(uv[0]*8, 0, 7))
		tileV := int(clamp(uv[1]*8, 0, 7))
		hsv := mgl32.Vec3{float32(tileU+(tileV+5)%8*8) / 64, 0.8, 0.75}
		if (int(uv[0]*16)+int(uv[1]*16))%2 != 0 {
			hsv[1] = 0.6
		}
		cell := fract(uv.Mul(32))
		const thick = 0.1
		if cell[0] < thick || cell[1] < thick {
			hsv[2] = 0.5
		}
		return hsvToRGB(hsv).Vec4(1)
	})
}

func colormapramp(width, height int) *raw {
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		band := int(clamp(uv[1]*4, 0, 3))
		return colormaps[band](uv[0]).Vec4(1)
	})
}

// addBorder paints a black frame of the given relative thickness.
func addBorder(r *raw, border float32) *raw {
	scale := 1 / float32(max(r.width, r.height))
	for j := 0; j < r.height; j++ {
		for i := 0; i < r.width; i++ {
			u, v := float32(i)*scale, float32(j)*scale
			if u < border || v < border ||
				u > float32(r.width)*scale-border || v > float32(r.height)*scale-border {
				r.set(i, j, black)
			}
		}
	}
	return r
}

// bumpToNormal turns a height map into a tangent space normal map.
func bumpToNormal(r *raw, scale float32) *raw {
	out := newRaw(r.width, r.height, r.linear)
	dx, dy := 1/float32(r.width), 1/float32(r.height)
	height := func(i, j int) float32 {
		c := r.at(i, j)
		return (c[0] + c[1] + c[2]) / 3
	}
	for j := 0; j < r.height; j++ {
		for i := 0; i < r.width; i++ {
			i1, j1 := (i+1)%r.width, (j+1)%r.height
			g00, g10, g01 := height(i, j), height(i1, j), height(i, j1)
			normal := mgl32.Vec3{scale * (g00 - g10) / dx, -scale * (g00 - g01) / dy, 1}
			normal = normal.Normalize().Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5})
			out.set(i, j, normal.Vec4(1))
		}
	}
	return out
}
