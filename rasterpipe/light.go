package rasterpipe

import (
	"math"

	"render-engine/core"
	rmath "render-engine/math"
)

// LightSource is a spherical-position point light: r and theta (inclination)
// are fixed at construction, phi (azimuth) is mutable via
// UpdateLightSourcePosition. Color and specular power are plain fields.
type LightSource struct {
	radius   float32
	phi      float32 // azimuth, degrees, mutable
	theta    float32 // inclination, degrees, fixed

	position rmath.Vec3

	Color         core.Color
	SpecularPower float32
}

// NewLightSource returns a light at the default pose used by the original
// engine's light-list editor: r=50, phi=0, theta=30, warm-white color,
// specular power 1.
func NewLightSource() *LightSource {
	l := &LightSource{
		radius:        50,
		phi:           0,
		theta:         30,
		Color:         core.Color{A: 255, R: 253, G: 251, B: 211},
		SpecularPower: 1,
	}
	l.position = l.sphericalPosition()
	return l
}

func (l *LightSource) sphericalPosition() rmath.Vec3 {
	phi := float64(radians(l.phi))
	theta := float64(radians(l.theta))
	return rmath.Vec3{
		X: l.radius * float32(math.Cos(phi)*math.Sin(theta)),
		Y: l.radius * float32(math.Sin(phi)*math.Sin(theta)),
		Z: l.radius * float32(math.Cos(theta)),
	}
}

// UpdateLightSourcePosition sets the light's azimuth and recomputes its
// world-space position.
func (l *LightSource) UpdateLightSourcePosition(azimuthDegrees float32) {
	l.phi = azimuthDegrees
	l.position = l.sphericalPosition()
}

// PositionWorld returns the light's current world-space position.
func (l *LightSource) PositionWorld() rmath.Vec3 { return l.position }
