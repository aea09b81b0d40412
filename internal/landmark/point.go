// Package landmark derives planar geometry from a face-mesh detection:
// point subsets, the silhouette bounding box, polygon areas and a yaw
// direction estimate built from the two nose-side polygons.
//
// Every function is pure and safe for concurrent use.
package landmark

import "github.com/golang/geo/r2"

// Point is a single mesh landmark. Z is carried through from the detector
// but the geometry here only looks at X and Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Vec returns the planar part of the point.
func (p Point) Vec() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Mesh is the ordered landmark sequence of one detected face, indexed by the
// MediaPipe face-mesh topology. Iris points, when present, follow index 467.
//
// A nil *Mesh means the detector produced no face at all; a non-nil Mesh
// with no points means the detector returned a face without landmarks.
type Mesh struct {
	Points []Point
}

// Len returns the number of points, or 0 for a nil mesh.
func (m *Mesh) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Points)
}

func distance(a, b Point) float64 {
	return a.Vec().Sub(b.Vec()).Norm()
}
