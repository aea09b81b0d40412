package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/detector"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

// MeshService interface for the service
type MeshService interface {
	Analyze(ctx context.Context, req *domain.FrameRequest) (*domain.FrameAnalysis, error)
	Readout(ctx context.Context, req *domain.FrameRequest) (*domain.Readout, error)
}

// MeshHandler handles landmark geometry requests
type MeshHandler struct {
	service MeshService
	logger  *slog.Logger
}

// NewMeshHandler creates a new MeshHandler instance
func NewMeshHandler(service MeshService, logger *slog.Logger) *MeshHandler {
	return &MeshHandler{
		service: service,
		logger:  logger,
	}
}

// RegionsResponse describes the mesh topology the service works with
type RegionsResponse struct {
	MaxMeshPoint     int              `json:"max_mesh_point"`
	NumIrisKeypoints int              `json:"num_iris_keypoints"`
	DefaultFactor    float64          `json:"default_factor"`
	Formats          []string         `json:"formats"`
	Regions          map[string][]int `json:"regions"`
}

// Analyze POST /v1/mesh/analyze - box, direction and irises for every face
func (h *MeshHandler) Analyze(c *fiber.Ctx) error {
	req, err := parseFrame(c)
	if err != nil {
		return err
	}

	analysis, err := h.service.Analyze(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// Readout POST /v1/mesh/readout - display text for the first face
func (h *MeshHandler) Readout(c *fiber.Ctx) error {
	req, err := parseFrame(c)
	if err != nil {
		return err
	}

	out, err := h.service.Readout(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(out)
}

// Regions GET /v1/mesh/regions - index tables and mesh constants
func (h *MeshHandler) Regions(c *fiber.Ctx) error {
	regions := make(map[string][]int, len(landmark.Regions()))
	for _, r := range landmark.Regions() {
		regions[string(r)] = r.Indices()
	}

	return c.JSON(RegionsResponse{
		MaxMeshPoint:     landmark.MaxMeshPoint,
		NumIrisKeypoints: landmark.NumIrisKeypoints,
		DefaultFactor:    landmark.DefaultFactor,
		Formats: lo.Map(detector.Formats(), func(f detector.Format, _ int) string {
			return string(f)
		}),
		Regions: regions,
	})
}

func parseFrame(c *fiber.Ctx) (*domain.FrameRequest, error) {
	var req domain.FrameRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.ErrBadRequest.WithError(err)
	}
	return &req, nil
}
