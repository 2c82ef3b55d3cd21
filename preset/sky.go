package preset

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// perez is the Perez et al. luminance distribution for a given turbidity.
type perez struct {
	a, b, c, d, e float32
}

func newPerez(turbidity float32) perez {
	return perez{
		a: 0.1787*turbidity - 1.4630,
		b: -0.3554*turbidity + 0.4275,
		c: -0.0227*turbidity + 5.3251,
		d: 0.1206*turbidity - 2.5771,
		e: -0.0670*turbidity + 0.3703,
	}
}

func (p perez) eval(theta, gamma float32) float32 {
	cosTheta := math32.Max(math32.Cos(theta), 0.01)
	cosGamma := math32.Cos(gamma)
	return (1 + p.a*math32.Exp(p.b/cosTheta)) * (1 + p.c*math32.Exp(p.d*gamma) + p.e*cosGamma*cosGamma)
}

var (
	horizonTint = mgl32.Vec3{1, 0.95, 0.9}
	zenithTint  = mgl32.Vec3{0.35, 0.55, 1}
	sunTint     = mgl32.Vec3{1, 0.95, 0.85}
)

// sunsky renders a linear latitude-longitude environment map with the sun
// at sunAngle from the zenith. Directions below the horizon show a diffuse
// ground of the given albedo.
func sunsky(width, height int, sunAngle, turbidity float32, hasSun bool,
	sunIntensity, sunRadius float32, groundAlbedo mgl32.Vec3) *raw {
	r := newRaw(width, height, true)

	chi := (4.0/9.0 - turbidity/120) * (math32.Pi - 2*sunAngle)
	zenith := ((4.0453*turbidity-4.9710)*math32.Tan(chi) - 0.2155*turbidity + 2.4192) / 10
	model := newPerez(turbidity)
	norm := model.eval(0, sunAngle)
	sunDir := mgl32.Vec3{0, math32.Cos(sunAngle), math32.Sin(sunAngle)}
	sunSize := 0.01 * sunRadius
	sunRadiance := sunIntensity / (math32.Pi * sunSize * sunSize)

	skyAt := func(theta float32, dir mgl32.Vec3) mgl32.Vec3 {
		gamma := math32.Acos(clamp(dir.Dot(sunDir), -1, 1))
		lum := zenith * model.eval(theta, gamma) / norm
		t := math32.Sqrt(math32.Max(math32.Cos(theta), 0))
		tint := horizonTint.Mul(1 - t).Add(zenithTint.Mul(t))
		color := tint.Mul(lum)
		if hasSun && gamma < sunSize {
			color = color.Add(sunTint.Mul(sunRadiance))
		}
		return color
	}
	ground := mgl32.Vec3{
		groundAlbedo[0] * horizonTint[0],
		groundAlbedo[1] * horizonTint[1],
		groundAlbedo[2] * horizonTint[2],
	}.Mul(zenith * model.eval(math32.Pi/2, math32.Pi/2) / norm / 2)

	for j := 0; j < height; j++ {
		theta := math32.Pi * (float32(j) + 0.5) / float32(height)
		for i := 0; i < width; i++ {
			phi := 2 * math32.Pi * (float32(i) + 0.5) / float32(width)
			if theta > math32.Pi/2 {
				r.set(i, j, ground.Vec4(1))
				continue
			}
			dir := mgl32.Vec3{
				math32.Cos(phi) * math32.Sin(theta),
				math32.Cos(theta),
				math32.Sin(phi) * math32.Sin(theta),
			}
			r.set(i, j, skyAt(theta, dir).Vec4(1))
		}
	}
	return r
}
