package rasterpipe

import (
	"math"
	"testing"
)

// TestClearForcesOpaqueAlpha covers property 4: Clear(c) leaves every alpha
// byte at 0xFF regardless of c.
func TestClearForcesOpaqueAlpha(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	for _, shade := range []byte{0x00, 0x7F, 0xFF} {
		fb.Clear(shade)
		for i := 3; i < len(fb.color); i += 4 {
			if fb.color[i] != 0xFF {
				t.Fatalf("Clear(%#x): alpha byte at %d = %#x, want 0xFF", shade, i, fb.color[i])
			}
		}
	}
}

// TestDrawLineSinglePoint covers property 5: a degenerate line between a
// point and itself emits exactly one pixel.
func TestDrawLineSinglePoint(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.DrawLine(2, 2, 2, 2, 0xFF, 0xFF, 0xFF, 0xFF)

	lit := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := (x + y*4) * 4
			if fb.color[i] != 0 || fb.color[i+1] != 0 || fb.color[i+2] != 0 {
				lit++
				if x != 2 || y != 2 {
					t.Errorf("unexpected lit pixel (%d,%d)", x, y)
				}
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit pixel count = %d, want 1", lit)
	}
}

// TestDrawLineS3 is the literal S3 scenario: draw_line((0,0)->(3,1)) on a
// 4x2 buffer lights exactly {(1,0),(2,1),(3,1)}.
func TestDrawLineS3(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.DrawLine(0, 0, 3, 1, 0xFF, 0xFF, 0xFF, 0xFF)

	want := map[[2]int]bool{{1, 0}: true, {2, 1}: true, {3, 1}: true}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			i := (x + y*4) * 4
			lit := fb.color[i] != 0 || fb.color[i+1] != 0 || fb.color[i+2] != 0
			if lit != want[[2]int{x, y}] {
				t.Errorf("pixel (%d,%d) lit=%v, want %v", x, y, lit, want[[2]int{x, y}])
			}
		}
	}
}

// TestZBufferMinimumDepthWins covers property 3: after z-buffered drawing,
// each covered pixel holds the minimum z of any write to it.
func TestZBufferMinimumDepthWins(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.EnableDepth()

	fb.ZDrawPixel(0, 0, 0.9, 0xFF, 0xFF, 0, 0)
	fb.ZDrawPixel(0, 0, 0.1, 0xFF, 0, 0xFF, 0)
	fb.ZDrawPixel(0, 0, 0.5, 0xFF, 0, 0, 0xFF) // farther, must not overwrite

	if got := fb.DepthAt(0, 0); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("DepthAt(0,0) = %v, want 0.1", got)
	}
	i := (0 + 0*2) * 4
	if fb.color[i] != 0 || fb.color[i+1] != 0xFF || fb.color[i+2] != 0 {
		t.Errorf("color at (0,0) = BGRA(%d,%d,%d,%d), want the green write to have won",
			fb.color[i], fb.color[i+1], fb.color[i+2], fb.color[i+3])
	}
}

// TestEnableDepthTwicePanics matches the source's "Z buffer already
// enabled!" invariant.
func TestEnableDepthTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double EnableDepth")
		}
	}()
	fb := NewFramebuffer(1, 1)
	fb.EnableDepth()
	fb.EnableDepth()
}
