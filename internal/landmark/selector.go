package landmark

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	// ErrEmptyDetection is returned when a detection carries no usable landmarks.
	ErrEmptyDetection = errors.New("empty detection result")

	// ErrIncompleteMesh is returned when a base-mesh index points past the end
	// of a truncated mesh.
	ErrIncompleteMesh = errors.New("mesh is missing requested landmark")
)

// EmptyPolicy decides what selecting from a missing detection does.
type EmptyPolicy int

const (
	// PolicyStrict fails with ErrEmptyDetection for both an absent and an
	// empty detection.
	PolicyStrict EmptyPolicy = iota

	// PolicyLenient treats an absent detection as "no face" and returns an
	// empty selection. A detection that is present but has no landmarks
	// still fails with ErrEmptyDetection.
	PolicyLenient
)

func (p EmptyPolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyLenient:
		return "lenient"
	default:
		return fmt.Sprintf("EmptyPolicy(%d)", int(p))
	}
}

// Selector picks landmark subsets under a fixed empty-detection policy.
// The zero value uses PolicyStrict.
type Selector struct {
	Policy EmptyPolicy
}

// NewSelector returns a Selector using policy.
func NewSelector(policy EmptyPolicy) Selector {
	return Selector{Policy: policy}
}

// Select returns the points at indices, in the order given. Indices outside
// [0, MaxMeshPoint) are dropped without error.
func (s Selector) Select(mesh *Mesh, indices []int) ([]Point, error) {
	if mesh == nil {
		if s.Policy == PolicyLenient {
			return []Point{}, nil
		}
		return nil, ErrEmptyDetection
	}
	if len(mesh.Points) == 0 {
		return nil, ErrEmptyDetection
	}

	valid := lo.Filter(indices, func(idx int, _ int) bool {
		return idx >= 0 && idx < MaxMeshPoint
	})

	points := make([]Point, 0, len(valid))
	for _, idx := range valid {
		if idx >= len(mesh.Points) {
			return nil, fmt.Errorf("%w: index %d, mesh has %d points", ErrIncompleteMesh, idx, len(mesh.Points))
		}
		points = append(points, mesh.Points[idx])
	}

	return points, nil
}

// SelectRegion is Select over a named region.
func (s Selector) SelectRegion(mesh *Mesh, region Region) ([]Point, error) {
	return s.Select(mesh, region.Indices())
}
