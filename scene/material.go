package scene

import "render-engine/core"

// Material is a per-polygon material record: an albedo color, a specular
// coefficient and shininess exponent, and up to three optional bound
// textures with independently toggled texturing channels. The Phong shading
// model reads only the textures and their enable flags; Albedo, Specular
// and Shininess are filled by the loaders but not read by any shading
// model, which take their base color from ShadeInput.MaterialColor and
// their specular exponent from each light.
type Material struct {
	Name      string
	Albedo    core.Color
	Specular  float32
	Shininess float32

	DiffuseTexture  *Texture
	NormalTexture   *Texture
	SpecularTexture *Texture

	DiffuseTexturingEnabled  bool
	NormalTexturingEnabled   bool
	SpecularTexturingEnabled bool
}

// DefaultMaterial returns a plain white matte material with no textures bound.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Albedo:    core.ColorWhite,
		Specular:  0.5,
		Shininess: 32,
	}
}

// NewMaterial creates a material with the given name and albedo color.
func NewMaterial(name string, albedo core.Color) *Material {
	return &Material{Name: name, Albedo: albedo, Specular: 0.5, Shininess: 32}
}
