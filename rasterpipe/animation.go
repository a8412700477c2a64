package rasterpipe

import (
	"math"

	rmath "render-engine/math"
)

// AnimationKind selects one of the five closed model-matrix generators. The
// source dispatches through a polymorphic "animation holder"; since the set
// is closed and never extended at runtime, a tagged enum plus a switch
// serves the same role without heap allocation per frame.
type AnimationKind int

const (
	NoAnimation AnimationKind = iota
	XAnimation
	YAnimation
	ZAnimation
	CarouselAnimation
)

// AnimationState holds the running angle counters the source keeps as
// function-local statics. Hoisting them here turns each animation into a
// pure (counter) -> matrix function with no process-wide mutable state.
type AnimationState struct {
	xDegrees        float32
	yDegrees        float32
	zDegrees        float32
	carouselZDeg    float32
	carouselOrbitDeg float32
}

// ModelMatrix advances the counter(s) belonging to kind by one invocation
// and returns the resulting model matrix.
func (s *AnimationState) ModelMatrix(kind AnimationKind) rmath.Mat4 {
	switch kind {
	case NoAnimation:
		return rmath.Mat4Identity()
	case XAnimation:
		s.xDegrees = advanceAngle(s.xDegrees, 1.0)
		return rmath.Mat4RotationX(radians(s.xDegrees))
	case YAnimation:
		s.yDegrees = advanceAngle(s.yDegrees, 1.0)
		// The source's Y-rotation basis is built with the opposite
		// handedness of this package's Mat4RotationY; negate the angle
		// to match its exact rotation direction.
		return rmath.Mat4RotationY(radians(-s.yDegrees))
	case ZAnimation:
		s.zDegrees = advanceAngle(s.zDegrees, 1.0)
		return rmath.Mat4RotationZ(radians(s.zDegrees))
	case CarouselAnimation:
		s.carouselZDeg = advanceAngle(s.carouselZDeg, 0.5)
		s.carouselOrbitDeg = advanceAngle(s.carouselOrbitDeg, 0.15)
		return carouselMatrix(s.carouselZDeg, s.carouselOrbitDeg)
	default:
		return rmath.Mat4Identity()
	}
}

func advanceAngle(degrees, step float32) float32 {
	degrees += step
	if degrees > 360 {
		degrees = 0
	}
	return degrees
}

// carouselMatrix builds a Z-axis rotation with an independent XY orbiting
// translation baked directly into the translation row (not composed through
// matrix multiplication — matching the source's direct column assembly).
func carouselMatrix(zDegrees, orbitDegrees float32) rmath.Mat4 {
	zc := float32(math.Cos(float64(radians(zDegrees))))
	zs := float32(math.Sin(float64(radians(zDegrees))))
	tc := float32(math.Cos(float64(radians(orbitDegrees))))
	ts := float32(math.Sin(float64(radians(orbitDegrees))))

	return rmath.Mat4{
		{zc, zs, 0, 0},
		{-zs, zc, 0, 0},
		{0, 0, 1, 0},
		{tc, ts, 0, 1},
	}
}
