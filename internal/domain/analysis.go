package domain

import (
	"encoding/json"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

// MaxFacesPerFrame caps how many faces a single frame may carry.
const MaxFacesPerFrame = 16

// FrameRequest is one video frame's worth of detector output. Format and
// Factor fall back to the server defaults when empty.
type FrameRequest struct {
	Format string            `json:"format,omitempty" validate:"omitempty,max=32"`
	Factor *float64          `json:"factor,omitempty"`
	Faces  []json.RawMessage `json:"faces" validate:"max=16"`
}

// FaceAnalysis is the geometry of one face. Error is set, and every other
// field left empty, when the face could not be analysed; the rest of the
// frame is unaffected.
type FaceAnalysis struct {
	Index     int                       `json:"index"`
	Box       *landmark.Box             `json:"box,omitempty"`
	Direction *landmark.DirectionResult `json:"direction,omitempty"`
	Irises    []landmark.Iris           `json:"irises,omitempty"`
	Error     *AppError                 `json:"error,omitempty"`
}

// FrameAnalysis is the result for a whole frame.
type FrameAnalysis struct {
	Format string         `json:"format"`
	Policy string         `json:"policy"`
	Factor float64        `json:"factor"`
	Faces  []FaceAnalysis `json:"faces"`
}

// Readout is the display text for the first face of a frame.
type Readout struct {
	FaceBox       string `json:"face_box,omitempty"`
	FaceDirection string `json:"face_direction"`
}
