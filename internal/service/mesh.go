package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/detector"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/readout"
)

type MeshService struct {
	format   detector.Format
	factor   float64
	validate *validator.Validate
	logger   *slog.Logger
}

func NewMeshService(format detector.Format, logger *slog.Logger) *MeshService {
	return &MeshService{
		format:   format,
		factor:   landmark.DefaultFactor,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *MeshService) WithFactor(factor float64) *MeshService {
	s.factor = factor
	return s
}

// Analyze computes box, direction and irises for every face in the frame.
// Request-level problems (format, factor, validation) fail the call; a face
// that cannot be analysed only gets its own Error.
func (s *MeshService) Analyze(ctx context.Context, req *domain.FrameRequest) (*domain.FrameAnalysis, error) {
	adapter, factor, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	selector := detector.Selector(adapter)
	analysis := &domain.FrameAnalysis{
		Format: string(adapter.Format()),
		Policy: selector.Policy.String(),
		Factor: factor,
		Faces:  make([]domain.FaceAnalysis, 0, len(req.Faces)),
	}

	for i, raw := range req.Faces {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze frame: %w", err)
		}

		face := s.analyzeFace(adapter, selector, raw, factor)
		face.Index = i
		if face.Error != nil {
			s.logger.Debug("face skipped",
				slog.Int("index", i),
				slog.String("code", face.Error.Code),
				slog.Any("error", face.Error.Err),
			)
		}
		analysis.Faces = append(analysis.Faces, face)
	}

	return analysis, nil
}

// Readout formats the first face of the frame for display. A frame with no
// faces is read as an absent detection, so the outcome follows the
// detector's empty policy. A failing face fails the call and the caller
// should skip this frame.
func (s *MeshService) Readout(ctx context.Context, req *domain.FrameRequest) (*domain.Readout, error) {
	adapter, factor, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("readout: %w", err)
	}

	var first json.RawMessage
	if len(req.Faces) > 0 {
		first = req.Faces[0]
	}

	face := s.analyzeFace(adapter, detector.Selector(adapter), first, factor)
	if face.Error != nil {
		return nil, face.Error
	}

	return FormatReadout(face)
}

// FormatReadout renders an analysed face as readout text.
func FormatReadout(face domain.FaceAnalysis) (*domain.Readout, error) {
	out := &domain.Readout{}

	if face.Box != nil {
		box, err := readout.Format(face.Box)
		if err != nil {
			return nil, domain.ErrInternal.WithError(err)
		}
		out.FaceBox = box
	}

	if face.Direction != nil {
		direction, err := readout.Format(face.Direction)
		if err != nil {
			return nil, domain.ErrInternal.WithError(err)
		}
		out.FaceDirection = direction
	}

	return out, nil
}

func (s *MeshService) resolve(req *domain.FrameRequest) (detector.Adapter, float64, error) {
	if req == nil {
		return nil, 0, domain.ErrBadRequest.WithError(errors.New("frame request is required"))
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, 0, domain.ErrValidationFailed.WithError(err)
	}

	format := s.format
	if req.Format != "" {
		parsed, err := detector.ParseFormat(req.Format)
		if err != nil {
			return nil, 0, domain.ErrUnsupportedFormat.WithError(err)
		}
		format = parsed
	}

	adapter, err := detector.ForFormat(format)
	if err != nil {
		return nil, 0, domain.ErrUnsupportedFormat.WithError(err)
	}

	factor := s.factor
	if req.Factor != nil {
		factor = *req.Factor
	}
	if err := landmark.ValidateFactor(factor); err != nil {
		return nil, 0, domain.ErrInvalidFactor.WithError(err)
	}

	return adapter, factor, nil
}

func (s *MeshService) analyzeFace(adapter detector.Adapter, selector landmark.Selector, raw json.RawMessage, factor float64) domain.FaceAnalysis {
	var face domain.FaceAnalysis

	mesh, err := adapter.Decode(raw)
	if err != nil {
		face.Error = toAppError(err)
		return face
	}

	box, err := selector.FaceBox(mesh)
	switch {
	case err == nil:
		face.Box = &box
	case errors.Is(err, landmark.ErrNoFaceBox):
		// no face: leave the box out, direction still reports indeterminate
	default:
		face.Error = toAppError(err)
		return face
	}

	direction, err := selector.FaceDirection(mesh, factor)
	if err != nil {
		face.Box = nil
		face.Error = toAppError(err)
		return face
	}
	face.Direction = &direction
	face.Irises = landmark.Irises(mesh)

	return face
}

func toAppError(err error) *domain.AppError {
	switch {
	case errors.Is(err, landmark.ErrEmptyDetection):
		return domain.ErrEmptyDetection.WithError(err)
	case errors.Is(err, landmark.ErrIncompleteMesh):
		return domain.ErrIncompleteMesh.WithError(err)
	case errors.Is(err, landmark.ErrNoFaceBox):
		return domain.ErrNoFaceBox.WithError(err)
	case errors.Is(err, landmark.ErrInvalidFactor):
		return domain.ErrInvalidFactor.WithError(err)
	case errors.Is(err, detector.ErrMalformedDetection):
		return domain.ErrMalformedDetection.WithError(err)
	case errors.Is(err, detector.ErrUnsupportedFormat):
		return domain.ErrUnsupportedFormat.WithError(err)
	default:
		return domain.ErrInternal.WithError(err)
	}
}
