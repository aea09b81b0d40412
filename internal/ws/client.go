package ws

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/readout"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/service"
)

// Analyzer computes the geometry of one frame.
type Analyzer interface {
	Analyze(ctx context.Context, req *domain.FrameRequest) (*domain.FrameAnalysis, error)
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID uuid.UUID
	send      chan []byte
	analyzer  Analyzer
	throttle  *readout.Throttle
	logger    *slog.Logger
	frames    uint64
}

func newClient(hub *Hub, conn *websocket.Conn, sessionID uuid.UUID, analyzer Analyzer, interval int, logger *slog.Logger) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
		analyzer:  analyzer,
		throttle:  readout.NewThrottle(interval),
		logger:    logger,
	}
}

// ReadPump treats every text message as one frame until the peer goes away.
func (c *Client) ReadPump(ctx context.Context, maxMessageSize int64) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	if maxMessageSize > 0 {
		c.conn.SetReadLimit(maxMessageSize)
	}

	for {
		messageType, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("stream read failed",
					slog.String("session_id", c.sessionID.String()),
					slog.Any("error", err),
				)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		c.handleFrame(ctx, msg)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// handleFrame analyses one frame and publishes the result to the session.
// Every frame, failed or not, advances the readout throttle; the readout is
// refreshed from the first face only when it was analysed cleanly.
func (c *Client) handleFrame(ctx context.Context, msg []byte) {
	c.frames++
	frame := c.frames
	refresh := c.throttle.Tick()

	var req domain.FrameRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		c.fail(frame, domain.ErrBadRequest.WithError(err))
		return
	}

	analysis, err := c.analyzer.Analyze(ctx, &req)
	if err != nil {
		c.fail(frame, err)
		return
	}

	c.hub.BroadcastToSession(c.sessionID, EventFrameAnalyzed, frame, analysis)

	if !refresh || len(analysis.Faces) == 0 || analysis.Faces[0].Error != nil {
		return
	}

	out, err := service.FormatReadout(analysis.Faces[0])
	if err != nil {
		c.fail(frame, err)
		return
	}
	c.hub.BroadcastToSession(c.sessionID, EventReadoutUpdated, frame, out)
}

func (c *Client) fail(frame uint64, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		appErr = domain.ErrInternal.WithError(err)
	}

	c.logger.Debug("frame failed",
		slog.String("session_id", c.sessionID.String()),
		slog.Uint64("frame", frame),
		slog.String("code", appErr.Code),
		slog.Any("error", err),
	)

	c.hub.BroadcastToSession(c.sessionID, EventFrameFailed, frame, appErr)
}
