package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light in the Whitted model.
// Materials are immutable once a scene is built and may be shared by any
// number of shapes.
type Material struct {
	AmbientColor  core.Vec3
	DiffuseColor  core.Vec3
	SpecularColor core.Vec3
	Shininess     float64 // Blinn-Phong exponent

	Reflective      core.Vec3 // zero disables mirror reflection
	Transparent     core.Vec3 // zero disables refraction
	RefractiveIndex float64

	// Texture overrides the ambient and diffuse colors when set
	Texture Texture
}

// New creates a material from its ambient, diffuse and specular colors
func New(ambient, diffuse, specular core.Vec3) *Material {
	return &Material{
		AmbientColor:    ambient,
		DiffuseColor:    diffuse,
		SpecularColor:   specular,
		Shininess:       1,
		RefractiveIndex: 1,
	}
}

// NewDiffuse creates a matte material with the given color. The ambient
// term uses the same color.
func NewDiffuse(color core.Vec3) *Material {
	return New(color, color, core.Vec3{})
}

// WithShininess sets the specular exponent and returns the material
func (m *Material) WithShininess(n float64) *Material {
	m.Shininess = n
	return m
}

// WithReflective sets the mirror reflection coefficient
func (m *Material) WithReflective(r core.Vec3) *Material {
	m.Reflective = r
	return m
}

// WithTransparent sets the transmission coefficient and index of refraction
func (m *Material) WithTransparent(t core.Vec3, refractiveIndex float64) *Material {
	m.Transparent = t
	m.RefractiveIndex = refractiveIndex
	return m
}

// WithTexture attaches a texture
func (m *Material) WithTexture(tex Texture) *Material {
	m.Texture = tex
	return m
}

// Ambient returns the ambient color at the hit. Textured materials use a
// dim copy of the texel.
func (m *Material) Ambient(si *SurfaceInteraction) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Texel(si).Multiply(0.001)
	}
	return m.AmbientColor
}

// Diffuse returns the diffuse color at the hit
func (m *Material) Diffuse(si *SurfaceInteraction) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Texel(si)
	}
	return m.DiffuseColor
}

// Specular returns the specular color
func (m *Material) Specular() core.Vec3 {
	return m.SpecularColor
}

// IsReflective reports whether reflection rays should be spawned
func (m *Material) IsReflective() bool {
	return !m.Reflective.IsZero()
}

// IsTransparent reports whether refraction rays should be spawned
func (m *Material) IsTransparent() bool {
	return !m.Transparent.IsZero()
}

// SurfaceInteraction records the nearest hit found for a ray. It is
// overwritten by every accepted intersection and lives only as long as the
// ray being resolved.
type SurfaceInteraction struct {
	Point    core.Vec3
	Normal   core.Vec3
	UV       core.Vec2 // surface parameterization of the hit shape
	Material *Material
}
