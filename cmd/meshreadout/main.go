// Command meshreadout analyses detector output saved as JSON and prints the
// geometry or the display readout.
package main

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/config"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/detector"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	flagFormat   = "format"
	flagFile     = "file"
	flagFactor   = "factor"
	flagReadout  = "readout"
	flagLogLevel = "log-level"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "meshreadout",
		Usage:     "face box, direction and irises from a saved detection",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"f"},
				Value:   string(detector.FormatKeypoints),
				Usage:   "detector output format (keypoints, scaled_mesh)",
			},
			&cli.StringFlag{
				Name:  flagFile,
				Value: "-",
				Usage: "read the detection from `FILE`, - for stdin",
			},
			&cli.Float64Flag{
				Name:  flagFactor,
				Value: landmark.DefaultFactor,
				Usage: "direction factor, must be greater than 1",
			},
			&cli.BoolFlag{
				Name:  flagReadout,
				Usage: "print the one-decimal readout of the first face instead of the full analysis",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "warn",
				Usage: "log level written to stderr",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger := config.NewLoggerTo(c.App.ErrWriter, "production", c.String(flagLogLevel))

	format, err := detector.ParseFormat(c.String(flagFormat))
	if err != nil {
		return err
	}

	raw, err := readInput(c.String(flagFile), c.App.Reader)
	if err != nil {
		return err
	}

	req, err := frameRequest(raw)
	if err != nil {
		return err
	}

	svc := service.NewMeshService(format, logger).WithFactor(c.Float64(flagFactor))

	var out any
	if c.Bool(flagReadout) {
		out, err = svc.Readout(c.Context, req)
	} else {
		out, err = svc.Analyze(c.Context, req)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detection: %w", err)
	}
	return data, nil
}

// frameRequest accepts either a full frame request or the detector output of
// a single face.
func frameRequest(raw []byte) (*domain.FrameRequest, error) {
	var probe map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, domain.ErrMalformedDetection.WithError(err)
	}

	if _, ok := probe["faces"]; ok {
		var req domain.FrameRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, domain.ErrMalformedDetection.WithError(err)
		}
		return &req, nil
	}

	return &domain.FrameRequest{Faces: []stdjson.RawMessage{raw}}, nil
}
