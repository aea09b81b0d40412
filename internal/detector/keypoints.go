package detector

import (
	"github.com/samber/lo"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

type keypoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Name string  `json:"name,omitempty"`
}

type keypointsFace struct {
	Keypoints []keypoint `json:"keypoints"`
}

// KeypointsAdapter decodes faces with field-indexed {x, y} keypoints.
// A missing face is a no-op for these consumers, so it uses PolicyLenient.
type KeypointsAdapter struct{}

func (KeypointsAdapter) Format() Format { return FormatKeypoints }

func (KeypointsAdapter) Policy() landmark.EmptyPolicy { return landmark.PolicyLenient }

func (KeypointsAdapter) Decode(raw []byte) (*landmark.Mesh, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var face keypointsFace
	if err := json.Unmarshal(raw, &face); err != nil {
		return nil, malformed(err)
	}

	return &landmark.Mesh{
		Points: lo.Map(face.Keypoints, func(k keypoint, _ int) landmark.Point {
			return landmark.Point{X: k.X, Y: k.Y, Z: k.Z}
		}),
	}, nil
}

var _ Adapter = KeypointsAdapter{}
