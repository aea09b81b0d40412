package ws

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type HandlerConfig struct {
	Analyzer        Analyzer
	ReadoutInterval int
	MaxMessageSize  int64
	Logger          *slog.Logger
}

// Handler serves one frame stream per connection. Clients may pass
// ?session=<uuid> to join an existing session; otherwise a new one is opened.
func Handler(hub *Hub, cfg HandlerConfig) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		sessionID := uuid.New()
		if raw := c.Query("session"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				_ = c.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid session id"))
				_ = c.Close()
				return
			}
			sessionID = parsed
		}

		client := newClient(hub, c, sessionID, cfg.Analyzer, cfg.ReadoutInterval, cfg.Logger)
		if !hub.Register(client) {
			_ = c.Close()
			return
		}

		hub.BroadcastToSession(sessionID, EventSessionStarted, 0, SessionStarted{
			SessionID:       sessionID,
			ReadoutInterval: client.throttle.Interval(),
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go client.WritePump()
		client.ReadPump(ctx, cfg.MaxMessageSize)
	})
}

func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}
