package svgfx

import "github.com/gogpu/svgfx/internal/lighting"

// LightSource is the closed set of light-source variants for the lighting
// primitives. Implementations are DistantLight, PointLight, and SpotLight.
// Light sources are immutable per lighting node.
type LightSource interface {
	// toInternal converts the source to the lighting kernel's
	// representation, with positional coordinates scaled by the device
	// scale factor.
	toInternal(scale float64) lighting.Source
}

// DistantLight is a directional light defined by azimuth and elevation
// angles in degrees.
type DistantLight struct {
	Azimuth   float64
	Elevation float64
}

func (d DistantLight) toInternal(scale float64) lighting.Source {
	// Angles are scale-independent.
	return lighting.Distant{
		Azimuth:   float32(d.Azimuth),
		Elevation: float32(d.Elevation),
	}
}

// PointLight is a light at (X, Y, Z) in user units.
type PointLight struct {
	X, Y, Z float64
}

func (p PointLight) toInternal(scale float64) lighting.Source {
	return lighting.Point{
		X: float32(p.X * scale),
		Y: float32(p.Y * scale),
		Z: float32(p.Z * scale),
	}
}

// SpotLight is a point light restricted to a cone aimed at
// (PointsAtX, PointsAtY, PointsAtZ). SpecularExponent controls falloff
// inside the cone; LimitingConeAngle (degrees off the axis) cuts the light
// entirely when HasLimitingCone is set.
type SpotLight struct {
	X, Y, Z                         float64
	PointsAtX, PointsAtY, PointsAtZ float64
	SpecularExponent                float64
	LimitingConeAngle               float64
	HasLimitingCone                 bool
}

func (s SpotLight) toInternal(scale float64) lighting.Source {
	exp := s.SpecularExponent
	if exp == 0 {
		exp = 1
	}
	return lighting.Spot{
		X:                float32(s.X * scale),
		Y:                float32(s.Y * scale),
		Z:                float32(s.Z * scale),
		PointsAtX:        float32(s.PointsAtX * scale),
		PointsAtY:        float32(s.PointsAtY * scale),
		PointsAtZ:        float32(s.PointsAtZ * scale),
		SpecularExponent: float32(exp),
		ConeAngle:        float32(s.LimitingConeAngle),
		HasCone:          s.HasLimitingCone,
	}
}
