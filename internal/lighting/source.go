// Package lighting implements the diffuse and specular lighting operators.
//
// A surface-normal field is estimated from the input's alpha channel via
// Sobel-factored 3x3 gradient kernels, with reduced-support kernels at the
// buffer's edges and corners as the SVG filter specification defines them.
// The normal is then evaluated against a distant, point, or spot light
// using a Phong-style model.
package lighting

import "github.com/chewxy/math32"

// Source is the closed set of light-source variants.
// Implementations are Distant, Point, and Spot.
type Source interface {
	// at returns the unit vector from surface point (x, y, z) toward the
	// light, and the scale applied to the light color at that point
	// (spotlight falloff; 1 for distant and point lights).
	at(x, y, z float32) (lx, ly, lz, intensity float32)
}

// Distant is a directional light infinitely far away.
// Azimuth and Elevation are in degrees.
type Distant struct {
	Azimuth   float32
	Elevation float32
}

func (d Distant) at(x, y, z float32) (float32, float32, float32, float32) {
	az := d.Azimuth * (math32.Pi / 180)
	el := d.Elevation * (math32.Pi / 180)
	return math32.Cos(az) * math32.Cos(el),
		math32.Sin(az) * math32.Cos(el),
		math32.Sin(el),
		1
}

// Point is a light at a position in the filter's coordinate space.
type Point struct {
	X, Y, Z float32
}

func (p Point) at(x, y, z float32) (float32, float32, float32, float32) {
	lx, ly, lz := normalize3(p.X-x, p.Y-y, p.Z-z)
	return lx, ly, lz, 1
}

// Spot is a point light restricted to a cone aimed at a target point.
// SpecularExponent controls the falloff inside the cone. When HasCone is
// set, light outside ConeAngle (degrees off the spot axis) is cut off.
type Spot struct {
	X, Y, Z                         float32
	PointsAtX, PointsAtY, PointsAtZ float32
	SpecularExponent                float32
	ConeAngle                       float32
	HasCone                         bool
}

func (s Spot) at(x, y, z float32) (float32, float32, float32, float32) {
	lx, ly, lz := normalize3(s.X-x, s.Y-y, s.Z-z)

	// Spot axis, from the light toward its target.
	sx, sy, sz := normalize3(s.PointsAtX-s.X, s.PointsAtY-s.Y, s.PointsAtZ-s.Z)

	// Angle factor between the surface direction and the spot axis.
	d := -(lx*sx + ly*sy + lz*sz)
	if d <= 0 {
		return lx, ly, lz, 0
	}
	if s.HasCone && d < math32.Cos(s.ConeAngle*(math32.Pi/180)) {
		return lx, ly, lz, 0
	}
	return lx, ly, lz, math32.Pow(d, s.SpecularExponent)
}

// normalize3 returns the unit vector of (x, y, z).
// A zero-length or non-finite input yields the +Z unit vector.
func normalize3(x, y, z float32) (float32, float32, float32) {
	n := math32.Sqrt(x*x + y*y + z*z)
	if n == 0 || math32.IsInf(n, 1) || math32.IsNaN(n) {
		return 0, 0, 1
	}
	return x / n, y / n, z / n
}
