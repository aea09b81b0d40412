package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/config"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/detector"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            3000,
		Environment:     "test",
		BodyLimitMB:     1,
		DetectorFormat:  "keypoints",
		DirectionFactor: 3,
		ReadoutInterval: 10,
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
	}
}

func setupRouter(t *testing.T, cfg *config.Config) *Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewMeshService(detector.FormatKeypoints, logger).WithFactor(cfg.DirectionFactor)

	r := NewRouter(logger, &Dependencies{MeshService: svc, Config: cfg})
	r.Setup()
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })
	return r
}

// keypointsFace places every point at (50,50) except two silhouette corners,
// giving a 100x200 box and degenerate nose regions.
func keypointsFace() string {
	sil := landmark.Silhouette()
	parts := make([]string, landmark.MaxMeshPoint)
	for i := range parts {
		x, y := 50, 50
		switch i {
		case sil[0]:
			x, y = 10, 20
		case sil[1]:
			x, y = 110, 220
		}
		parts[i] = fmt.Sprintf(`{"x":%d,"y":%d,"z":0}`, x, y)
	}
	return `{"keypoints":[` + strings.Join(parts, ",") + `]}`
}

func post(t *testing.T, r *Router, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.App().Test(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func TestRouter_Analyze(t *testing.T) {
	r := setupRouter(t, testConfig())

	status, body := post(t, r, "/v1/mesh/analyze", `{"faces":[`+keypointsFace()+`,{"keypoints":[]}]}`)
	require.Equal(t, 200, status, string(body))

	var result struct {
		Format string `json:"format"`
		Policy string `json:"policy"`
		Faces  []struct {
			Box       *landmark.Box             `json:"box"`
			Direction *landmark.DirectionResult `json:"direction"`
			Error     *struct {
				Code string `json:"code"`
			} `json:"error"`
		} `json:"faces"`
	}
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, "keypoints", result.Format)
	assert.Equal(t, "lenient", result.Policy)
	require.Len(t, result.Faces, 2)

	require.NotNil(t, result.Faces[0].Box)
	assert.Equal(t, landmark.Box{Left: 10, Top: 20, Right: 110, Bottom: 220, Width: 100, Height: 200}, *result.Faces[0].Box)
	require.NotNil(t, result.Faces[0].Direction)
	assert.Equal(t, landmark.DirectionIndeterminate, result.Faces[0].Direction.Direction)

	require.NotNil(t, result.Faces[1].Error)
	assert.Equal(t, "EMPTY_DETECTION", result.Faces[1].Error.Code)
}

func TestRouter_AnalyzeErrors(t *testing.T) {
	r := setupRouter(t, testConfig())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unsupported format", `{"format":"landmarks68","faces":[]}`, 400, "UNSUPPORTED_FORMAT"},
		{"invalid factor", `{"factor":1,"faces":[]}`, 422, "INVALID_FACTOR"},
		{"malformed body", `{"faces":`, 400, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, r, "/v1/mesh/analyze", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, string(body), tt.wantCode)
		})
	}
}

func TestRouter_Readout(t *testing.T) {
	r := setupRouter(t, testConfig())

	status, body := post(t, r, "/v1/mesh/readout", `{"faces":[`+keypointsFace()+`]}`)
	require.Equal(t, 200, status, string(body))

	var result struct {
		FaceBox       string `json:"face_box"`
		FaceDirection string `json:"face_direction"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, `{"left":"10.0","top":"20.0","right":"110.0","bottom":"220.0","width":"100.0","height":"200.0"}`, result.FaceBox)
	assert.Contains(t, result.FaceDirection, `"direction":"indeterminate"`)
}

func TestRouter_RegionsAndHealth(t *testing.T) {
	r := setupRouter(t, testConfig())

	for _, path := range []string{"/health", "/ready", "/v1/mesh/regions"} {
		resp, err := r.App().Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, path)
	}
}

func TestRouter_StreamRequiresUpgrade(t *testing.T) {
	r := setupRouter(t, testConfig())

	resp, err := r.App().Test(httptest.NewRequest("GET", "/v1/mesh/stream", nil))
	require.NoError(t, err)
	assert.Equal(t, 426, resp.StatusCode)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	r := setupRouter(t, cfg)

	for i := 0; i < 2; i++ {
		resp, err := r.App().Test(httptest.NewRequest("GET", "/v1/mesh/regions", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}

	resp, err := r.App().Test(httptest.NewRequest("GET", "/v1/mesh/regions", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)

	// health sits outside the limited group
	resp, err = r.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
