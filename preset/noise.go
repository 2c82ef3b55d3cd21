package preset

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	noiseSeed       = 1
	noiseOctaves    = 6
	noiseLacunarity = 2
	noiseGain       = 0.5
	ridgeOffset     = 1
)

// newNoise returns a single octave gradient noise source. Octaves are
// summed by the callers so every variant shares one permutation table.
func newNoise() *perlin.Perlin {
	return perlin.NewPerlin(2, 2, 1, noiseSeed)
}

func noise2(p *perlin.Perlin, uv mgl32.Vec2) float32 {
	return float32(p.Noise2D(float64(uv[0]), float64(uv[1])))
}

func fbm(p *perlin.Perlin, uv mgl32.Vec2) float32 {
	var sum float32
	amplitude, frequency := float32(1), float32(1)
	for k := 0; k < noiseOctaves; k++ {
		sum += amplitude * noise2(p, uv.Mul(frequency))
		amplitude *= noiseGain
		frequency *= noiseLacunarity
	}
	return sum
}

func turbulence(p *perlin.Perlin, uv mgl32.Vec2) float32 {
	var sum float32
	amplitude, frequency := float32(1), float32(1)
	for k := 0; k < noiseOctaves; k++ {
		sum += amplitude * math32.Abs(noise2(p, uv.Mul(frequency)))
		amplitude *= noiseGain
		frequency *= noiseLacunarity
	}
	return sum
}

func ridge(p *perlin.Perlin, uv mgl32.Vec2) float32 {
	var sum float32
	amplitude, frequency, prev := float32(0.5), float32(1), float32(1)
	for k := 0; k < noiseOctaves; k++ {
		r := ridgeOffset - math32.Abs(noise2(p, uv.Mul(frequency)))
		r *= r
		sum += r * amplitude * prev
		prev = r
		amplitude *= noiseGain
		frequency *= noiseLacunarity
	}
	return sum
}

func noiseImage(width, height int, scale float32, fn func(*perlin.Perlin, mgl32.Vec2) float32, remap func(float32) float32) *raw {
	p := newNoise()
	return procedural(width, height, false, func(uv mgl32.Vec2) mgl32.Vec4 {
		v := clamp(remap(fn(p, uv.Mul(8*scale))), 0, 1)
		return lerp(black, white, v)
	})
}

func signedToUnit(v float32) float32 { return v*0.5 + 0.5 }
func identity(v float32) float32     { return v }

func noisemap(width, height int, scale float32) *raw {
	return noiseImage(width, height, scale, noise2, signedToUnit)
}

func fbmmap(width, height int, scale float32) *raw {
	return noiseImage(width, height, scale, fbm, signedToUnit)
}

func ridgemap(width, height int, scale float32) *raw {
	return noiseImage(width, height, scale, ridge, identity)
}

func turbulencemap(width, height int, scale float32) *raw {
	return noiseImage(width, height, scale, turbulence, identity)
}
