// Package detector decodes the per-face output of the supported face-mesh
// detectors into landmark meshes. Each detector version has its own JSON
// shape and its own behaviour for a missing face.
package detector

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnsupportedFormat  = errors.New("unsupported detector format")
	ErrMalformedDetection = errors.New("malformed detection")
)

// Format identifies a detector output shape.
type Format string

const (
	// FormatKeypoints is the newer detector: {keypoints: [{x, y, z, name}], box}.
	FormatKeypoints Format = "keypoints"

	// FormatScaledMesh is the legacy MediaPipe detector:
	// {kind: "MediaPipePredictionValues", scaledMesh: [[x, y, z]], boundingBox}.
	FormatScaledMesh Format = "scaled_mesh"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatKeypoints, FormatScaledMesh}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatKeypoints, FormatScaledMesh:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Adapter turns one raw detection into a mesh.
type Adapter interface {
	Format() Format

	// Policy is the empty-detection policy this detector's consumers expect.
	Policy() landmark.EmptyPolicy

	// Decode returns a nil mesh when raw is empty or JSON null.
	Decode(raw []byte) (*landmark.Mesh, error)
}

// ForFormat returns the adapter for f.
func ForFormat(f Format) (Adapter, error) {
	switch f {
	case FormatKeypoints:
		return KeypointsAdapter{}, nil
	case FormatScaledMesh:
		return ScaledMeshAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// Selector returns a landmark selector carrying the adapter's policy.
func Selector(a Adapter) landmark.Selector {
	return landmark.NewSelector(a.Policy())
}

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedDetection, err)
}
