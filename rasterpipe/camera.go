package rasterpipe

import (
	"math"

	rmath "render-engine/math"
)

func radians(degrees float32) float32 {
	return degrees / 180.0 * float32(math.Pi)
}

// Camera is a spherical-coordinate orbit camera: position is (r, phi, theta)
// around the world origin, with a derived orthonormal basis recomputed on
// every UpdateCameraPosition call. Theta (inclination) clamps to [0, 180];
// phi (azimuth) wraps to 0 outside [-360, 360].
type Camera struct {
	radius float32
	phi    float32 // azimuth, degrees
	theta  float32 // inclination, degrees

	origin rmath.Vec3
	xAxis  rmath.Vec3
	yAxis  rmath.Vec3
	zAxis  rmath.Vec3
}

// NewCamera returns a camera at the given orbit radius, looking down the
// +Z axis at theta=0, phi=0 (the default axial front view).
func NewCamera(radius float32) *Camera {
	c := &Camera{radius: radius}
	c.SetViewFromZ()
	return c
}

// SetRadius rescales the camera's distance from the origin, keeping its
// current direction.
func (c *Camera) SetRadius(r float32) {
	length := c.origin.Length()
	c.radius = r
	if length > 0 {
		c.origin = c.origin.Mul(r / length)
	}
}

func (c *Camera) sphericalPosition(phiDegrees, thetaDegrees float32) rmath.Vec3 {
	phi := float64(radians(phiDegrees))
	theta := float64(radians(thetaDegrees))
	return rmath.Vec3{
		X: c.radius * float32(math.Cos(phi)*math.Sin(theta)),
		Y: c.radius * float32(math.Sin(phi)*math.Sin(theta)),
		Z: c.radius * float32(math.Cos(theta)),
	}
}

// rotationAxis derives the world X axis at the current azimuth and a fixed
// 90 degree inclination, used as the pivot for the inclination rotation
// that follows.
func (c *Camera) rotationAxis() rmath.Vec3 {
	pos := c.sphericalPosition(c.phi, 90)
	newZ := pos.Normalize().Negate()
	yCam := rmath.Vec3{Z: -1}
	return yCam.Cross(newZ)
}

// UpdateCameraPosition applies an azimuth and inclination delta (in
// degrees, as produced by a normalized mouse drag) and recomputes the
// camera's basis and origin.
func (c *Camera) UpdateCameraPosition(azimuthDelta, inclinationDelta float32) {
	c.phi += azimuthDelta
	if c.phi > 360 || c.phi < -360 {
		c.phi = 0
	}

	axis := c.rotationAxis()

	c.theta += inclinationDelta
	if c.theta > 180 {
		c.theta = 180
	}
	if c.theta < 0 {
		c.theta = 0
	}

	oldY := rmath.Vec3{Z: -1}
	pivot := axis.Negate().Normalize()
	newY := oldY.RotateAroundAxis(pivot, radians(90-c.theta))

	c.origin = c.sphericalPosition(c.phi, c.theta)
	newZ := c.origin.Normalize().Negate()
	newX := newY.Cross(newZ)

	c.xAxis, c.yAxis, c.zAxis = newX, newY, newZ
}

// SetViewFromX snaps the camera to the canonical +X axial view.
func (c *Camera) SetViewFromX() {
	c.phi, c.theta = 0, 90
	c.origin = rmath.Vec3{X: c.radius}
	c.xAxis = rmath.Vec3{Y: 1}
	c.yAxis = rmath.Vec3{Z: -1}
	c.zAxis = rmath.Vec3{X: -1}
}

// SetViewFromY snaps the camera to the canonical +Y axial view.
func (c *Camera) SetViewFromY() {
	c.phi, c.theta = 90, 90
	c.origin = rmath.Vec3{Y: c.radius}
	c.xAxis = rmath.Vec3{X: -1}
	c.yAxis = rmath.Vec3{Z: -1}
	c.zAxis = rmath.Vec3{Y: -1}
}

// SetViewFromZ snaps the camera to the canonical +Z axial view (the default).
func (c *Camera) SetViewFromZ() {
	c.phi, c.theta = 0, 0
	c.origin = rmath.Vec3{Z: c.radius}
	c.xAxis = rmath.Vec3{Y: 1}
	c.yAxis = rmath.Vec3{X: 1}
	c.zAxis = rmath.Vec3{Z: -1}
}

// Matrix returns the camera-to-world matrix: basis vectors as rows, origin
// as the translation row, matching this package's row-vector convention.
func (c *Camera) Matrix() rmath.Mat4 {
	return rmath.Mat4{
		{c.xAxis.X, c.xAxis.Y, c.xAxis.Z, 0},
		{c.yAxis.X, c.yAxis.Y, c.yAxis.Z, 0},
		{c.zAxis.X, c.zAxis.Y, c.zAxis.Z, 0},
		{c.origin.X, c.origin.Y, c.origin.Z, 1},
	}
}

// ViewMatrix returns the world-to-camera matrix (the inverse of Matrix).
// Matrix is a rigid transform (orthonormal rotation rows plus a translation
// row), so its inverse is computed analytically rather than through the
// general adjugate inverse: transpose the rotation block, and replace the
// translation row with the origin projected onto each (negated) basis axis.
func (c *Camera) ViewMatrix() rmath.Mat4 {
	return rmath.Mat4{
		{c.xAxis.X, c.yAxis.X, c.zAxis.X, 0},
		{c.xAxis.Y, c.yAxis.Y, c.zAxis.Y, 0},
		{c.xAxis.Z, c.yAxis.Z, c.zAxis.Z, 0},
		{-c.origin.Dot(c.xAxis), -c.origin.Dot(c.yAxis), -c.origin.Dot(c.zAxis), 1},
	}
}

// ForwardAxis returns the camera's Z basis vector (its view direction).
func (c *Camera) ForwardAxis() rmath.Vec3 { return c.zAxis }
