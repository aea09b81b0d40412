package landmark

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"
)

// ErrNoFaceBox is returned when there are no points to bound.
var ErrNoFaceBox = errors.New("no face box available")

// Box is an axis-aligned bounding box in detector coordinates.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the bounding box of points. An empty input yields
// ErrNoFaceBox rather than a zero box.
func Bounds(points []Point) (Box, error) {
	if len(points) == 0 {
		return Box{}, ErrNoFaceBox
	}

	rect := r2.RectFromPoints(lo.Map(points, func(p Point, _ int) r2.Point {
		return p.Vec()
	})...)

	return Box{
		Left:   rect.X.Lo,
		Top:    rect.Y.Lo,
		Right:  rect.X.Hi,
		Bottom: rect.Y.Hi,
		Width:  rect.X.Hi - rect.X.Lo,
		Height: rect.Y.Hi - rect.Y.Lo,
	}, nil
}

// FaceBox bounds the silhouette of mesh.
func (s Selector) FaceBox(mesh *Mesh) (Box, error) {
	points, err := s.Select(mesh, silhouette[:])
	if err != nil {
		return Box{}, err
	}
	return Bounds(points)
}
