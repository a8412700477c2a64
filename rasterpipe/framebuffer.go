// Package rasterpipe implements the CPU rendering core: a scanline
// triangle rasterizer with perspective-correct attribute interpolation,
// z-buffered visibility, and a closed set of shading models, driven by a
// fixed-function transform stack.
package rasterpipe

import (
	"fmt"
	"math"
)

// Framebuffer owns a BGRA8 color plane and an optional float64 depth plane.
// Both planes are allocated on construction; a Framebuffer is not meant to
// be copied — callers pass it by pointer.
type Framebuffer struct {
	width, height int
	color         []byte
	depth         []float64
}

// NewFramebuffer allocates a width*height color plane (cleared to opaque
// black) with no depth plane. Call EnableDepth to add one.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		color:  make([]byte, width*height*4),
	}
	fb.Clear(0)
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// EnableDepth allocates the depth plane, filled to +Inf. Panics if already
// enabled — matching the source's "Z buffer already enabled!" invariant.
func (fb *Framebuffer) EnableDepth() {
	if fb.depth != nil {
		panic("rasterpipe: depth buffer already enabled")
	}
	fb.depth = make([]float64, fb.width*fb.height)
	fb.ClearDepth()
}

// ClearDepth fills the depth plane with +Inf. Panics if depth is not enabled.
func (fb *Framebuffer) ClearDepth() {
	if fb.depth == nil {
		panic("rasterpipe: depth buffer is not enabled")
	}
	for i := range fb.depth {
		fb.depth[i] = math.Inf(1)
	}
}

// DepthEnabled reports whether EnableDepth has been called.
func (fb *Framebuffer) DepthEnabled() bool { return fb.depth != nil }

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// DrawPixel writes a BGRA color at (x, y), silently ignoring out-of-bounds
// coordinates.
func (fb *Framebuffer) DrawPixel(x, y int, a, r, g, b byte) {
	if !fb.inBounds(x, y) {
		return
	}
	i := (x + y*fb.width) * 4
	fb.color[i] = b
	fb.color[i+1] = g
	fb.color[i+2] = r
	fb.color[i+3] = a
}

// ZDrawPixel writes the pixel only if z is nearer than the current depth at
// (x, y) (smaller z wins). Requires the depth plane to be enabled.
func (fb *Framebuffer) ZDrawPixel(x, y int, z float64, a, r, g, b byte) {
	if fb.depth == nil {
		panic("rasterpipe: z-test requires an enabled depth buffer")
	}
	if !fb.inBounds(x, y) {
		return
	}
	di := x + y*fb.width
	if z < fb.depth[di] {
		fb.depth[di] = z
		fb.DrawPixel(x, y, a, r, g, b)
	}
}

// DepthAt returns the depth-plane value at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.inBounds(x, y) || fb.depth == nil {
		return math.Inf(1)
	}
	return fb.depth[x+y*fb.width]
}

// DrawLine rasterizes a DDA line between two floating-point endpoints,
// emitting one pixel per step at max(|dx|, |dy|) + 1 steps.
func (fb *Framebuffer) DrawLine(x1, y1, x2, y2 float32, a, r, g, b byte) {
	dx := int(x2) - int(x1)
	dy := int(y2) - int(y1)

	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	steps++

	x, y := x1, y1
	xStep := float32(dx) / float32(steps)
	yStep := float32(dy) / float32(steps)

	for step := 1; step <= steps; step++ {
		x += xStep
		y += yStep
		fb.DrawPixel(roundToInt(x), roundToInt(y), a, r, g, b)
	}
}

// Clear fills the color plane with shade on every channel, then forces every
// alpha byte back to 0xFF regardless of shade.
func (fb *Framebuffer) Clear(shade byte) {
	for i := range fb.color {
		fb.color[i] = shade
	}
	for i := 3; i < len(fb.color); i += 4 {
		fb.color[i] = 0xFF
	}
}

// CopyTo copies the color plane into a caller-provided buffer of at least
// Width()*Height()*4 bytes.
func (fb *Framebuffer) CopyTo(out []byte) error {
	need := fb.width * fb.height * 4
	if len(out) < need {
		return fmt.Errorf("rasterpipe: output buffer too small: have %d bytes, need %d", len(out), need)
	}
	copy(out, fb.color)
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundToInt(f float32) int {
	return int(math.Round(float64(f)))
}
