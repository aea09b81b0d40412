package ws

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/readout"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req *domain.FrameRequest) (*domain.FrameAnalysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FrameAnalysis), args.Error(1)
}

func centeredAnalysis() *domain.FrameAnalysis {
	return &domain.FrameAnalysis{
		Format: "keypoints",
		Policy: "lenient",
		Factor: 3,
		Faces: []domain.FaceAnalysis{{
			Box: &landmark.Box{Left: 1, Top: 2, Right: 3, Bottom: 4, Width: 2, Height: 2},
			Direction: &landmark.DirectionResult{
				LeftNoseArea:     100,
				RightNoseArea:    100,
				LeftToRightRatio: 1,
				Direction:        landmark.DirectionCenter,
			},
		}},
	}
}

func streamClient(t *testing.T, analyzer Analyzer, interval int) *Client {
	t.Helper()
	c := testClient(startHub(t), uuid.New(), 32)
	c.analyzer = analyzer
	c.throttle = readout.NewThrottle(interval)
	require.True(t, c.hub.Register(c))
	return c
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClient_HandleFrame_Analyzed(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(r *domain.FrameRequest) bool {
		return r.Format == "keypoints" && len(r.Faces) == 1
	})).Return(centeredAnalysis(), nil)

	c := streamClient(t, analyzer, 1)
	c.handleFrame(context.Background(), []byte(`{"format":"keypoints","faces":[{"keypoints":[]}]}`))

	analyzed := receive(t, c)
	assert.Equal(t, EventFrameAnalyzed, analyzed.Type)
	assert.Equal(t, uint64(1), analyzed.Frame)

	updated := receive(t, c)
	assert.Equal(t, EventReadoutUpdated, updated.Type)
	data, ok := updated.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t,
		`{"left_nose_area":"100.0","right_nose_area":"100.0","left_to_right_ratio":"1.0","direction":"center"}`,
		data["face_direction"])

	analyzer.AssertExpectations(t)
}

func TestClient_HandleFrame_Failures(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		setup    func(*MockAnalyzer)
		wantCode string
	}{
		{
			name:     "malformed message",
			msg:      `{"faces":`,
			setup:    func(m *MockAnalyzer) {},
			wantCode: "BAD_REQUEST",
		},
		{
			name: "analyzer error",
			msg:  `{"format":"landmarks68","faces":[]}`,
			setup: func(m *MockAnalyzer) {
				m.On("Analyze", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFormat)
			},
			wantCode: "UNSUPPORTED_FORMAT",
		},
		{
			name: "context cancelled",
			msg:  `{"faces":[]}`,
			setup: func(m *MockAnalyzer) {
				m.On("Analyze", mock.Anything, mock.Anything).Return(nil, context.Canceled)
			},
			wantCode: "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(MockAnalyzer)
			tt.setup(analyzer)

			c := streamClient(t, analyzer, 1)
			c.handleFrame(context.Background(), []byte(tt.msg))

			event := receive(t, c)
			assert.Equal(t, EventFrameFailed, event.Type)
			data, ok := event.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, data["code"])

			assertNoMessage(t, c)
			analyzer.AssertExpectations(t)
		})
	}
}

func TestClient_HandleFrame_ThrottlesReadout(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(centeredAnalysis(), nil)

	c := streamClient(t, analyzer, 3)

	for i := 0; i < 2; i++ {
		c.handleFrame(context.Background(), []byte(`{"faces":[{}]}`))
		assert.Equal(t, EventFrameAnalyzed, receive(t, c).Type)
	}
	assertNoMessage(t, c)

	c.handleFrame(context.Background(), []byte(`{"faces":[{}]}`))
	assert.Equal(t, EventFrameAnalyzed, receive(t, c).Type)

	updated := receive(t, c)
	assert.Equal(t, EventReadoutUpdated, updated.Type)
	assert.Equal(t, uint64(3), updated.Frame)
}

func TestClient_HandleFrame_SkipsReadoutForFailedFace(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(&domain.FrameAnalysis{
		Faces: []domain.FaceAnalysis{{Error: domain.ErrEmptyDetection}},
	}, nil)

	c := streamClient(t, analyzer, 1)
	c.handleFrame(context.Background(), []byte(`{"faces":[{}]}`))

	assert.Equal(t, EventFrameAnalyzed, receive(t, c).Type)
	assertNoMessage(t, c)
}
