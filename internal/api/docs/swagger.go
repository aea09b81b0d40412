package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// FrameRequest is one frame of detector output
type FrameRequest struct {
	Format string   `json:"format,omitempty" example:"keypoints"`
	Factor float64  `json:"factor,omitempty" example:"3"`
	Faces  []object `json:"faces"`
}

// object stands in for a raw detector payload
type object struct{}

// BoxData is the silhouette bounding box
type BoxData struct {
	Left   float64 `json:"left" example:"112.4"`
	Top    float64 `json:"top" example:"80.1"`
	Right  float64 `json:"right" example:"301.9"`
	Bottom float64 `json:"bottom" example:"322.7"`
	Width  float64 `json:"width" example:"189.5"`
	Height float64 `json:"height" example:"242.6"`
}

// DirectionData is the nose-area comparison
type DirectionData struct {
	LeftNoseArea     float64 `json:"left_nose_area" example:"1234.56"`
	RightNoseArea    float64 `json:"right_nose_area" example:"600"`
	LeftToRightRatio float64 `json:"left_to_right_ratio" example:"2.0576"`
	Direction        string  `json:"direction" example:"center"`
}

// PointData is a single landmark
type PointData struct {
	X float64 `json:"x" example:"190.2"`
	Y float64 `json:"y" example:"171.8"`
	Z float64 `json:"z,omitempty" example:"-4.1"`
}

// IrisData describes one eye
type IrisData struct {
	Center    PointData `json:"center"`
	DiameterX float64   `json:"diameter_x" example:"11.7"`
	DiameterY float64   `json:"diameter_y" example:"11.2"`
}

// FaceData is the analysis of one face
type FaceData struct {
	Index     int            `json:"index" example:"0"`
	Box       *BoxData       `json:"box,omitempty"`
	Direction *DirectionData `json:"direction,omitempty"`
	Irises    []IrisData     `json:"irises,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"`
}

// AnalyzeResponse is the analysis of a whole frame
type AnalyzeResponse struct {
	Format string     `json:"format" example:"keypoints"`
	Policy string     `json:"policy" example:"lenient"`
	Factor float64    `json:"factor" example:"3"`
	Faces  []FaceData `json:"faces"`
}

// ReadoutResponse holds display strings with one-decimal numbers
type ReadoutResponse struct {
	FaceBox       string `json:"face_box,omitempty" example:"{\"left\":\"112.4\",\"top\":\"80.1\"}"`
	FaceDirection string `json:"face_direction" example:"{\"direction\":\"center\"}"`
}

// RegionsResponse lists the index tables
type RegionsResponse struct {
	MaxMeshPoint     int              `json:"max_mesh_point" example:"468"`
	NumIrisKeypoints int              `json:"num_iris_keypoints" example:"5"`
	DefaultFactor    float64          `json:"default_factor" example:"3"`
	Formats          []string         `json:"formats" example:"keypoints,scaled_mesh"`
	Regions          map[string][]int `json:"regions"`
}

// StreamEvent is one WebSocket message sent to stream clients
type StreamEvent struct {
	SessionID string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Type      string `json:"type" example:"frame.analyzed"`
	Frame     int64  `json:"frame,omitempty" example:"42"`
	Data      object `json:"data"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
}

// HealthResponse is returned by the probes
type HealthResponse struct {
	Status  string  `json:"status" example:"ok"`
	Version string  `json:"version,omitempty" example:"0.1.0"`
	Format  string  `json:"format,omitempty" example:"keypoints"`
	Factor  float64 `json:"factor,omitempty" example:"3"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"EMPTY_DETECTION"`
	Message string `json:"message" example:"Detection result has no landmarks"`
}

var frameErrors = []response.Response{
	response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
	response.New(ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: "Detector format is not supported"}, "400", "Bad Request"),
	response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
	response.New(ErrorResponse{Code: "INVALID_FACTOR", Message: "Direction factor must be greater than 1"}, "422", "Unprocessable Entity"),
	response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded, please try again later"}, "429", "Too Many Requests"),
	response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Face Mesh Geometry API",
		Version:     "v1.0.0",
		Description: "Face box, head direction and iris geometry from face-landmark detector output",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// GET /v1/mesh/regions
		endpoint.New(
			endpoint.GET,
			"/mesh/regions",
			endpoint.WithTags("Mesh"),
			endpoint.WithSummary("List landmark regions"),
			endpoint.WithDescription("Returns the nose and silhouette index tables, the mesh size and the supported detector formats"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RegionsResponse{}, "200", "Regions listed"),
			}),
		),

		// POST /v1/mesh/analyze
		endpoint.New(
			endpoint.POST,
			"/mesh/analyze",
			endpoint.WithTags("Mesh"),
			endpoint.WithSummary("Analyze a frame"),
			endpoint.WithDescription("Computes the face box, head direction and irises of every face. A face that cannot be analysed carries its own error; the rest of the frame is still returned."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FrameRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalyzeResponse{}, "200", "Frame analysed"),
			}),
			endpoint.WithErrors(frameErrors),
		),

		// POST /v1/mesh/readout
		endpoint.New(
			endpoint.POST,
			"/mesh/readout",
			endpoint.WithTags("Mesh"),
			endpoint.WithSummary("Display readout for the first face"),
			endpoint.WithDescription("Formats the box and direction of the first face with every number rendered to one decimal place"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FrameRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReadoutResponse{}, "200", "Readout formatted"),
			}),
			endpoint.WithErrors(append([]response.Response{
				response.New(ErrorResponse{Code: "EMPTY_DETECTION", Message: "Detection result has no landmarks"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INCOMPLETE_MESH", Message: "Detection mesh is missing required landmarks"}, "422", "Unprocessable Entity"),
			}, frameErrors...)),
		),

		// GET /v1/mesh/stream
		endpoint.New(
			endpoint.GET,
			"/mesh/stream",
			endpoint.WithTags("Stream"),
			endpoint.WithSummary("Stream frames over WebSocket"),
			endpoint.WithDescription("Each text message is one frame request. The server answers with frame.analyzed or frame.failed per frame and readout.updated every READOUT_INTERVAL frames."),
			endpoint.WithParams(
				parameter.StrParam("session", parameter.Query, parameter.WithDescription("Existing session ID to join (optional)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StreamEvent{}, "101", "Switching Protocols"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "HTTP_ERROR", Message: "Upgrade Required"}, "426", "Upgrade Required"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
