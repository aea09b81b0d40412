package landmark

import (
	"errors"
	"fmt"
	"math"
)

// DefaultFactor is the left/right area ratio past which a face counts as turned.
const DefaultFactor = 3.0

// ErrInvalidFactor is returned for a sensitivity factor that is not a finite
// number greater than 1.
var ErrInvalidFactor = errors.New("direction factor must be a finite number greater than 1")

// Direction is the estimated yaw of a face.
type Direction string

const (
	DirectionCenter Direction = "center"
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"

	// DirectionIndeterminate is reported when both nose polygons are
	// degenerate, so no ratio exists.
	DirectionIndeterminate Direction = "indeterminate"
)

// DirectionResult carries the two nose areas, their ratio and the verdict.
type DirectionResult struct {
	LeftNoseArea     float64   `json:"left_nose_area"`
	RightNoseArea    float64   `json:"right_nose_area"`
	LeftToRightRatio float64   `json:"left_to_right_ratio"`
	Direction        Direction `json:"direction"`
}

// ValidateFactor checks that factor can be used to classify a ratio.
func ValidateFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidFactor, factor)
	}
	return nil
}

// Classify maps a left-to-right area ratio onto a direction. The center band
// is open on both ends: ratio == factor is left, ratio == 1/factor is right.
func Classify(ratio, factor float64) Direction {
	switch {
	case ratio < factor && ratio > 1/factor:
		return DirectionCenter
	case ratio >= factor:
		return DirectionLeft
	default:
		return DirectionRight
	}
}

// FaceDirection estimates yaw from the ratio of the left and right nose
// polygon areas. Turning the head right shrinks the left polygon on screen,
// and the other way round.
//
// A zero right area with a positive left area is the extreme left turn and
// reports math.MaxFloat64 as the ratio, as does a right area so small that
// the ratio overflows. Two zero areas are indeterminate, and so is an area
// that overflowed; the result never holds a non-finite number.
func (s Selector) FaceDirection(mesh *Mesh, factor float64) (DirectionResult, error) {
	if err := ValidateFactor(factor); err != nil {
		return DirectionResult{}, err
	}

	leftPoints, err := s.Select(mesh, leftNose[:])
	if err != nil {
		return DirectionResult{}, fmt.Errorf("left nose: %w", err)
	}
	rightPoints, err := s.Select(mesh, rightNose[:])
	if err != nil {
		return DirectionResult{}, fmt.Errorf("right nose: %w", err)
	}

	result := DirectionResult{
		LeftNoseArea:  PolygonArea(leftPoints),
		RightNoseArea: PolygonArea(rightPoints),
	}

	switch {
	case !isFinite(result.LeftNoseArea) || !isFinite(result.RightNoseArea):
		// coordinates too large for the cross products
		result.LeftNoseArea = clampArea(result.LeftNoseArea)
		result.RightNoseArea = clampArea(result.RightNoseArea)
		result.Direction = DirectionIndeterminate
	case result.RightNoseArea == 0 && result.LeftNoseArea == 0:
		result.Direction = DirectionIndeterminate
	case result.RightNoseArea == 0:
		result.LeftToRightRatio = math.MaxFloat64
		result.Direction = DirectionLeft
	default:
		ratio := result.LeftNoseArea / result.RightNoseArea
		if math.IsInf(ratio, 1) {
			ratio = math.MaxFloat64
		}
		result.LeftToRightRatio = ratio
		result.Direction = Classify(ratio, factor)
	}

	return result, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// clampArea maps an overflowed area onto the largest finite value.
func clampArea(area float64) float64 {
	if isFinite(area) {
		return area
	}
	return math.MaxFloat64
}
