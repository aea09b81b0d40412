package detector

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

const mediaPipeKind = "MediaPipePredictionValues"

type scaledMeshFace struct {
	Kind       string      `json:"kind"`
	ScaledMesh [][]float64 `json:"scaledMesh"`
}

// ScaledMeshAdapter decodes legacy MediaPipe predictions, whose points are
// [x, y] or [x, y, z] tuples. These consumers treat a missing face as an
// error, so it uses PolicyStrict.
//
// A prediction of any other kind decodes to an empty mesh.
type ScaledMeshAdapter struct{}

func (ScaledMeshAdapter) Format() Format { return FormatScaledMesh }

func (ScaledMeshAdapter) Policy() landmark.EmptyPolicy { return landmark.PolicyStrict }

func (ScaledMeshAdapter) Decode(raw []byte) (*landmark.Mesh, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var face scaledMeshFace
	if err := json.Unmarshal(raw, &face); err != nil {
		return nil, malformed(err)
	}

	if face.Kind != mediaPipeKind {
		return &landmark.Mesh{}, nil
	}

	points := make([]landmark.Point, len(face.ScaledMesh))
	for i, tuple := range face.ScaledMesh {
		if len(tuple) < 2 {
			return nil, malformed(fmt.Errorf("point %d has %d coordinates", i, len(tuple)))
		}
		points[i] = landmark.Point{X: tuple[0], Y: tuple[1]}
		if len(tuple) > 2 {
			points[i].Z = tuple[2]
		}
	}

	return &landmark.Mesh{Points: points}, nil
}

var _ Adapter = ScaledMeshAdapter{}
