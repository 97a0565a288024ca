package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/validation"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// localHosts are the browser origin hosts allowed to open a log socket
var localHosts = []string{"localhost", "127.0.0.1", "::1"}

// allowedOrigin accepts no origin, a loopback origin, or the dashboard's
// own host
func allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	// non-browser clients send no origin
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if lo.Contains(localHosts, u.Hostname()) {
		return true
	}
	return strings.EqualFold(u.Host, r.Host)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		if allowedOrigin(r) {
			return true
		}
		logger.WithFields(logger.Fields{
			"origin": r.Header.Get("Origin"),
			"remote": r.RemoteAddr,
		}).Warn("WebSocket connection rejected - invalid origin")
		return false
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleLogsWebSocket relays the backend's live log stream of a container
// to the browser, one rendered line per message. Closing the socket cancels
// the backend stream.
func (s *Server) handleLogsWebSocket(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ContainerID(id); err != nil {
		return err
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.GetLogger(c).WithError(err).Error("Failed to upgrade WebSocket connection")
		return nil
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	sub, err := dashboard.Subscribe(ctx, s.api, id)
	if err != nil {
		s.sendStatus(c, ws, "Live logs unavailable: "+err.Error())
		return nil
	}
	defer sub.Close()

	log := logger.GetLogger(c).WithField("container", id)
	log.Info("Log relay started")

	// the browser never sends anything; a read error means it went away
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("WebSocket read error")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Log relay stopped")
			return nil
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case line, ok := <-sub.Lines:
			if !ok {
				s.sendStatus(c, ws, "Log stream ended")
				return nil
			}
			if err := s.sendFragment(c, ws, "log-line-oob", line); err != nil {
				log.WithError(err).Debug("WebSocket write failed")
				return nil
			}
		}
	}
}

func (s *Server) sendFragment(c echo.Context, ws *websocket.Conn, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := s.echo.Renderer.Render(&buf, name, data, c); err != nil {
		return err
	}
	_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return ws.WriteMessage(websocket.TextMessage, buf.Bytes())
}

func (s *Server) sendStatus(c echo.Context, ws *websocket.Conn, text string) {
	if err := s.sendFragment(c, ws, "log-status-oob", text); err != nil {
		logger.GetLogger(c).WithError(err).Debug("WebSocket status write failed")
	}
}
