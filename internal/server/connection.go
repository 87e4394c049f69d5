package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/equity-cli/internal/protocol"
)

// Connection handles one client: a loop of simulate requests, each
// answered with a result or error message. Simulations run inline;
// a client wanting concurrent calculations opens more connections.
type Connection struct {
	conn   *websocket.Conn
	config *Config
	logger *log.Logger
}

// NewConnection wraps an upgraded websocket connection.
func NewConnection(conn *websocket.Conn, config *Config, logger *log.Logger) *Connection {
	return &Connection{
		conn:   conn,
		config: config,
		logger: logger.WithPrefix("conn"),
	}
}

// Run reads requests until the client goes away.
func (c *Connection) Run() {
	for {
		var msg protocol.SimulateRequest
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		if err := c.handle(msg); err != nil {
			c.logger.Warn("write failed", "error", err)
			return
		}
	}
}

func (c *Connection) handle(msg protocol.SimulateRequest) error {
	if msg.Type != protocol.TypeSimulate {
		return c.conn.WriteJSON(protocol.Error{
			Type:    protocol.TypeError,
			Message: "unknown message type: " + msg.Type,
		})
	}

	req, err := msg.ToRequest()
	if err != nil {
		return c.conn.WriteJSON(protocol.NewError(err))
	}
	req.Iterations = c.config.clampIterations(msg.Iterations)

	start := time.Now()
	res, err := c.config.simulate(req, seedFor(msg.Seed))
	if err != nil {
		return c.conn.WriteJSON(protocol.NewError(err))
	}
	elapsed := time.Since(start)

	c.logger.Debug("simulated", "trials", res.Trials, "elapsed", elapsed)
	return c.conn.WriteJSON(protocol.NewSimulateResult(req, res, elapsed))
}
