package preset

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// blackbodyToRGB returns the linear sRGB color of a black body at the given
// temperature in kelvin, normalized so the largest channel is one. The
// chromaticity follows the Kim et al. fit of the Planckian locus.
func blackbodyToRGB(temperature float32) mgl32.Vec3 {
	t := clamp(temperature, 1667, 25000)
	t2, t3 := t*t, t*t*t

	var x float32
	if t < 4000 {
		x = -0.2661239e9/t3 - 0.2343589e6/t2 + 0.8776956e3/t + 0.179910
	} else {
		x = -3.0258469e9/t3 + 2.1070379e6/t2 + 0.2226347e3/t + 0.240390
	}
	x2, x3 := x*x, x*x*x
	var y float32
	switch {
	case t < 2222:
		y = -1.1063814*x3 - 1.34811020*x2 + 2.18555832*x - 0.20219683
	case t < 4000:
		y = -0.9549476*x3 - 1.37418593*x2 + 2.09137015*x - 0.16748867
	default:
		y = 3.0817580*x3 - 5.87338670*x2 + 3.75112997*x - 0.37001483
	}

	xyz := mgl32.Vec3{x / y, 1, (1 - x - y) / y}
	rgb := mgl32.Vec3{
		3.2404542*xyz[0] - 1.5371385*xyz[1] - 0.4985314*xyz[2],
		-0.9692660*xyz[0] + 1.8760108*xyz[1] + 0.0415560*xyz[2],
		0.0556434*xyz[0] - 0.2040259*xyz[1] + 1.0572252*xyz[2],
	}
	for k := range rgb {
		rgb[k] = math32.Max(rgb[k], 0)
	}
	m := math32.Max(rgb[0], math32.Max(rgb[1], rgb[2]))
	if m > 0 {
		rgb = rgb.Mul(1 / m)
	}
	return rgb
}

func hsvToRGB(hsv mgl32.Vec3) mgl32.Vec3 {
	h, s, v := hsv[0], hsv[1], hsv[2]
	if s == 0 {
		return mgl32.Vec3{v, v, v}
	}
	h = (h - math32.Floor(h)) * 6
	i := int(h)
	f := h - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i {
	case 0:
		return mgl32.Vec3{v, t, p}
	case 1:
		return mgl32.Vec3{q, v, p}
	case 2:
		return mgl32.Vec3{p, v, t}
	case 3:
		return mgl32.Vec3{p, q, v}
	case 4:
		return mgl32.Vec3{t, p, v}
	default:
		return mgl32.Vec3{v, p, q}
	}
}

// colormap evaluates a degree six polynomial fit of a perceptual map.
type colormap [7]mgl32.Vec3

func (c colormap) eval(t float32) mgl32.Vec3 {
	t = clamp(t, 0, 1)
	out := c[6]
	for k := 5; k >= 0; k-- {
		out = c[k].Add(out.Mul(t))
	}
	for k := range out {
		out[k] = clamp(out[k], 0, 1)
	}
	return out
}

var (
	viridis = colormap{
		{0.2777273272234177, 0.005407344544966578, 0.3340998053353061},
		{0.1050930431085774, 1.404613529898575, 1.384590162594685},
		{-0.3308618287255563, 0.214847559468213, 0.09509516302823659},
		{-4.634230498983486, -5.799100973351585, -19.33244095627987},
		{6.228269936347081, 14.17993336680509, 56.69055260068105},
		{4.776384997670288, -13.74514537774601, -65.35303263337234},
		{-5.435455855934631, 4.645852612178535, 26.3124352495832},
	}
	plasma = colormap{
		{0.05873234392399702, 0.02333670892565664, 0.5433401826748754},
		{2.176514634195958, 0.2383834171260182, 0.7539604599784036},
		{-2.689460476458034, -7.455851135738909, 3.110799939717086},
		{6.130348345893603, 42.3461881477227, -28.51885465332158},
		{-11.10743619062271, -82.66631109428045, 60.13984767418263},
		{10.02306557647065, 71.41361770095349, -54.07218655560067},
		{-3.658713842777788, -22.93153465461149, 18.19190778539828},
	}
	magma = colormap{
		{-0.002136485053939582, -0.000749655052795221, -0.005386127855323933},
		{0.2516605407371642, 0.6775232436837668, 2.494026599312351},
		{8.353717279216625, -3.577719514958484, 0.3144679030132573},
		{-27.66873308576866, 14.26473078096533, -13.64921318813922},
		{52.17613981234068, -27.94360607168351, 12.94416944238394},
		{-50.76852536473588, 29.04658282127291, 4.23415299384598},
		{18.65570506591883, -11.48977351997711, -5.601961508734096},
	}
	inferno = colormap{
		{0.0002189403691192265, 0.001651004631001012, -0.01948089843709184},
		{0.1065134194856116, 0.5639564367884091, 3.932712388889277},
		{11.60249308247187, -3.972853965665698, -15.9423941062914},
		{-41.70399613139459, 17.43639888205313, 44.35414519872813},
		{77.162935699427, -33.40235894210092, -81.80730925738993},
		{-71.31942824499214, 32.62606426397723, 73.20951985803202},
		{25.13112622477341, -12.24266895238567, -23.07032500287172},
	}
)

var colormaps = [4]func(float32) mgl32.Vec3{viridis.eval, plasma.eval, magma.eval, inferno.eval}
