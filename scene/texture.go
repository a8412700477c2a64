package scene

// Texture is a 2-D byte grid sampled by the shading models. Components is 3
// for RGB, 4 for RGBA (as io.LoadTextureFile and the glTF loader produce),
// or 1 for monochrome (see material texture slots in material.go).
// The pipeline never interprets file formats itself; textures arrive
// pre-decoded from io.LoadTextureFile or a scene loader.
type Texture struct {
	Name       string
	Width      int
	Height     int
	Components int
	Pixels     []byte // row-major, top-to-bottom, Components bytes per texel
}

// NewSolidTexture creates a 1x1 RGB texture of a single color. Useful as a
// stand-in default texture and in tests.
func NewSolidTexture(name string, r, g, b byte) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Components: 3, Pixels: []byte{r, g, b}}
}

// Sample performs nearest-neighbor lookup at UV coordinates in [0, 1]^2,
// clamping to the texture's extent. u and v outside [0, 1] are clamped, not
// wrapped. Returns the component slice at that texel; callers must not
// mutate it.
func (t *Texture) Sample(u, v float32) []byte {
	if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) == 0 {
		return nil
	}
	u = clamp01(u)
	v = clamp01(v)
	x := int(u * float32(t.Width-1))
	y := int(v * float32(t.Height-1))
	idx := (y*t.Width + x) * t.Components
	if idx < 0 || idx+t.Components > len(t.Pixels) {
		return nil
	}
	return t.Pixels[idx : idx+t.Components]
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
