package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

// MockMeshService is a mock implementation of MeshService
type MockMeshService struct {
	mock.Mock
}

func (m *MockMeshService) Analyze(ctx context.Context, req *domain.FrameRequest) (*domain.FrameAnalysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FrameAnalysis), args.Error(1)
}

func (m *MockMeshService) Readout(ctx context.Context, req *domain.FrameRequest) (*domain.Readout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Readout), args.Error(1)
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMeshApp(svc MeshService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})
	h := NewMeshHandler(svc, testLogger())
	app.Get("/v1/mesh/regions", h.Regions)
	app.Post("/v1/mesh/analyze", h.Analyze)
	app.Post("/v1/mesh/readout", h.Readout)
	return app
}

func TestMeshHandler_Analyze(t *testing.T) {
	box := landmark.Box{Left: 10, Top: 20, Right: 110, Bottom: 220, Width: 100, Height: 200}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockMeshService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"format":"keypoints","faces":[{"keypoints":[]}]}`,
			setupMock: func(m *MockMeshService) {
				m.On("Analyze", mock.Anything, mock.MatchedBy(func(r *domain.FrameRequest) bool {
					return r.Format == "keypoints" && len(r.Faces) == 1
				})).Return(&domain.FrameAnalysis{
					Format: "keypoints",
					Policy: "lenient",
					Factor: 3,
					Faces:  []domain.FaceAnalysis{{Index: 0, Box: &box}},
				}, nil)
			},
			wantStatus: 200,
		},
		{
			name: "service error",
			body: `{"format":"landmarks68","faces":[]}`,
			setupMock: func(m *MockMeshService) {
				m.On("Analyze", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFormat)
			},
			wantStatus: 400,
			wantCode:   "UNSUPPORTED_FORMAT",
		},
		{
			name:       "malformed body",
			body:       `{"faces":`,
			setupMock:  func(m *MockMeshService) {},
			wantStatus: 400,
			wantCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMeshService)
			tt.setupMock(svc)
			app := setupMeshApp(svc)

			req := httptest.NewRequest("POST", "/v1/mesh/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tt.wantCode != "" {
				var env struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(body, &env))
				assert.Equal(t, tt.wantCode, env.Error.Code)
			} else {
				var result domain.FrameAnalysis
				require.NoError(t, json.Unmarshal(body, &result))
				require.Len(t, result.Faces, 1)
				assert.Equal(t, box, *result.Faces[0].Box)
				assert.Equal(t, "lenient", result.Policy)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestMeshHandler_Readout(t *testing.T) {
	svc := new(MockMeshService)
	svc.On("Readout", mock.Anything, mock.Anything).Return(&domain.Readout{
		FaceBox:       `{"left":"10.0"}`,
		FaceDirection: `{"direction":"center"}`,
	}, nil)
	app := setupMeshApp(svc)

	req := httptest.NewRequest("POST", "/v1/mesh/readout", strings.NewReader(`{"faces":[{}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result domain.Readout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, `{"direction":"center"}`, result.FaceDirection)
	svc.AssertExpectations(t)
}

func TestMeshHandler_Readout_Error(t *testing.T) {
	svc := new(MockMeshService)
	svc.On("Readout", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyDetection)
	app := setupMeshApp(svc)

	req := httptest.NewRequest("POST", "/v1/mesh/readout", strings.NewReader(`{"faces":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestMeshHandler_Regions(t *testing.T) {
	app := setupMeshApp(new(MockMeshService))

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/mesh/regions", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result RegionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, landmark.MaxMeshPoint, result.MaxMeshPoint)
	assert.Equal(t, landmark.NumIrisKeypoints, result.NumIrisKeypoints)
	assert.Equal(t, []string{"keypoints", "scaled_mesh"}, result.Formats)
	assert.Equal(t, landmark.Silhouette(), result.Regions["silhouette"])
	assert.Len(t, result.Regions["left_nose"], 16)
	assert.Len(t, result.Regions["right_nose"], 16)
}
