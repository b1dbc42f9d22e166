package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Whitted implements classic recursive ray tracing: Blinn-Phong direct
// lighting with hard shadows, perfect mirror reflection and Snell
// refraction blended with Schlick's Fresnel term.
type Whitted struct {
	config Config
}

// NewWhitted creates a Whitted integrator
func NewWhitted(config Config) *Whitted {
	return &Whitted{config: config}
}

// Li implements Integrator
func (w *Whitted) Li(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	if depth >= w.config.MaxDepth {
		return core.Vec3{}
	}

	var si material.SurfaceInteraction
	t := s.Intersect(&ray, &si)
	if math.IsInf(t, 1) || t < 0 || si.Material == nil {
		return core.Vec3{}
	}

	d := ray.Direction.Normalize()
	m := si.Material

	color := w.direct(s, &si, d)
	if m.IsReflective() {
		reflected := w.Li(core.Offset(si.Point, core.Reflect(d, si.Normal), w.config.ShadowEpsilon), s, depth+1)
		color = color.Add(reflected.MultiplyVec(m.Reflective))
	}
	if m.IsTransparent() {
		color = color.Add(w.transmit(s, &si, d, depth).MultiplyVec(m.Transparent))
	}
	return color
}

// direct sums the ambient, diffuse and specular terms of every light.
// The ambient term is added whether or not the light is visible.
func (w *Whitted) direct(s *scene.Scene, si *material.SurfaceInteraction, d core.Vec3) core.Vec3 {
	m := si.Material
	p, n := si.Point, si.Normal
	ambient := m.Ambient(si)
	diffuse := m.Diffuse(si)
	specular := m.Specular()

	var color core.Vec3
	for _, light := range s.Lights {
		color = color.Add(ambient.MultiplyVec(light.Emission(d)).Multiply(w.config.AmbientFactor))

		if !light.Visible(p, s, w.config.ShadowEpsilon) {
			continue
		}
		ls := light.Sample(p)

		if cos := n.Dot(ls.ToLight); cos > 0 {
			e := light.Emission(ls.ToLight.Negate())
			color = color.Add(e.MultiplyVec(diffuse).Multiply(cos * ls.Falloff))
		}

		if !specular.IsZero() {
			half := ls.ToLight.Subtract(d).Normalize()
			if cos := n.Dot(half); cos > 0 {
				e := light.Emission(d)
				color = color.Add(e.MultiplyVec(specular).Multiply(math.Pow(cos, m.Shininess) * ls.Falloff))
			}
		}
	}
	return color
}

// transmit returns the Fresnel-weighted blend of the reflected and
// refracted radiance at a transparent surface. Under total internal
// reflection only the reflected part remains.
func (w *Whitted) transmit(s *scene.Scene, si *material.SurfaceInteraction, d core.Vec3, depth int) core.Vec3 {
	eps := w.config.ShadowEpsilon
	n := si.Normal
	eta := 1 / si.Material.RefractiveIndex

	reflected := w.Li(core.Offset(si.Point, core.Reflect(d, n), eps), s, depth+1)
	dir, ok := Refract(d, n, eta)
	if !ok {
		return reflected
	}
	refracted := w.Li(core.Offset(si.Point, dir, eps), s, depth+1)

	f := Fresnel(eta, d.Negate().Dot(n))
	return reflected.Multiply(f).Add(refracted.Multiply(1 - f))
}

// Refract bends the unit direction d through a surface with unit normal n
// using Snell's law, where eta is the ratio of the refractive index on the
// side n points to over the index on the other side. When d leaves
// through the back of the surface the normal is flipped and eta inverted.
// It returns false on total internal reflection.
func Refract(d, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosi := -n.Dot(d)
	if cosi < 0 {
		n = n.Negate()
		cosi = -cosi
		eta = 1 / eta
	}
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}, false
	}
	return d.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k))).Normalize(), true
}

// Fresnel returns Schlick's approximation of the reflectance for relative
// index relEta at an interface seen under cosine c. A negative cosine means
// the ray arrives from the other side, which inverts relEta.
func Fresnel(relEta, c float64) float64 {
	if c < 0 {
		c = -c
		relEta = 1 / relEta
	}
	r0 := (relEta - 1) / (relEta + 1)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-c, 5)
}
