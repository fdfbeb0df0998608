package remote

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 256
)

func (s *serverImpl) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"sessions":    len(s.Sessions()),
		"controllers": len(s.registry.Controllers()),
	})
}

func (s *serverImpl) handleListSessions(c *fiber.Ctx) error {
	return c.JSON(s.Sessions())
}

func (s *serverImpl) handleGetSession(c *fiber.Ctx) error {
	sess := s.session(c.Params("id"))
	if sess == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(sess.Info())
}

func (s *serverImpl) handleGetDescriptor(c *fiber.Ctx) error {
	return c.JSON(s.Descriptor())
}

// handleNavigationWS runs one page connection. The page must open with a hello
// message; events that arrive earlier are dropped. Only the writer goroutine
// writes to the connection.
func (s *serverImpl) handleNavigationWS(c *websocket.Conn) {
	id := uuid.New().String()
	logger := log.With("session", id)

	out := make(chan OutboundMessage, sendBuffer)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	send := func(m OutboundMessage) {
		select {
		case <-done:
			return
		default:
		}
		select {
		case out <- m:
		default:
			logger.Warn("outbound queue full, dropping message", "type", m.Type)
		}
	}

	go func() {
		defer close(writerDone)
		writePump(c, out, done)
	}()

	var sess *Session
	defer func() {
		close(done)
		if sess != nil {
			s.CloseSession(id)
		}
		<-writerDone
	}()

	c.SetReadLimit(maxMessageSize)
	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("connection lost", "error", err)
			}
			return
		}

		msg, err := DecodeInbound(data)
		if err != nil {
			logger.Debug("discarding message", "error", err)
			send(OutboundMessage{Type: MsgError, Error: err.Error()})
			continue
		}

		if sess == nil {
			if msg.Type != MsgHello {
				logger.Debug("message before hello ignored", "type", msg.Type)
				continue
			}
			sess, err = s.OpenSession(id, msg, send)
			if err != nil {
				send(OutboundMessage{Type: MsgError, Error: err.Error()})
				continue
			}
			send(OutboundMessage{Type: MsgSession, Session: id})
			continue
		}

		if _, err := sess.Handle(msg); err != nil {
			if errors.Is(err, ErrBadMessage) {
				logger.Debug("discarding message", "error", err)
				continue
			}
			logger.Warn("message failed", "type", msg.Type, "error", err)
		}
	}
}

func writePump(c *websocket.Conn, out <-chan OutboundMessage, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case m := <-out:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteJSON(m); err != nil {
				log.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
