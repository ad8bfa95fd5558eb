package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/api/middleware"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxControlSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades live-view connections and bridges them onto the event
// bus. Each connection holds exactly one bus subscription at a time; when a
// chat view switches peers the old subscription is released before the new
// one attaches.
type Handler struct {
	bus       ports.EventBus
	presence  ports.Presence
	jwtSecret string
	log       zerolog.Logger
}

func NewHandler(bus ports.EventBus, presence ports.Presence, jwtSecret string, log zerolog.Logger) *Handler {
	return &Handler{bus: bus, presence: presence, jwtSecret: jwtSecret, log: log}
}

// peerSwitch is the only control frame a chat connection accepts.
type peerSwitch struct {
	Peer string `json:"peer"`
}

func (h *Handler) authenticate(c echo.Context) (string, error) {
	token := c.QueryParam("token")
	if token == "" {
		var err error
		token, err = middleware.BearerToken(c.Request().Header.Get("Authorization"))
		if err != nil {
			return "", err
		}
	}
	claims, err := middleware.ParseClaims(token, h.jwtSecret)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing principal")
	}
	return uid, nil
}

// Chat streams conversation updates. The initial peer comes from the query
// string; the client may switch peers by sending {"peer":"<id>"} frames.
func (h *Handler) Chat(c echo.Context) error {
	uid, err := h.authenticate(c)
	if err != nil {
		return err
	}
	peer := c.QueryParam("peer")
	if peer == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "peer is required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}

	metrics.LiveStreams.WithLabelValues("conversation").Inc()
	defer metrics.LiveStreams.WithLabelValues("conversation").Dec()

	ctx := c.Request().Context()
	deliveries, release, err := h.bus.Subscribe(ctx, domain.ConversationKey(uid, peer))
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", uid).Msg("chat stream subscribe failed")
		_ = conn.Close()
		return nil
	}
	defer func() { release() }()

	h.markOnline(ctx, uid)
	defer h.markOffline(uid)

	switches := make(chan string)
	closed := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go h.readControl(conn, switches, closed, done)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-closed:
			return nil
		case newPeer := <-switches:
			// Release before resubscribing so a burst of switches never
			// leaves a stale subscription attached.
			release()
			deliveries, release, err = h.bus.Subscribe(ctx, domain.ConversationKey(uid, newPeer))
			if err != nil {
				h.log.Warn().Err(err).Str("user_id", uid).Msg("chat stream resubscribe failed")
				return nil
			}
		case payload, ok := <-deliveries:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readControl pumps peer-switch frames from the socket and signals close.
func (h *Handler) readControl(conn *websocket.Conn, switches chan<- string, closed chan<- struct{}, done <-chan struct{}) {
	defer close(closed)
	conn.SetReadLimit(maxControlSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ctrl peerSwitch
		if err := json.Unmarshal(frame, &ctrl); err != nil || ctrl.Peer == "" {
			continue
		}
		select {
		case switches <- ctrl.Peer:
		case <-done:
			return
		}
	}
}

// Notifications streams the caller's notification feed.
func (h *Handler) Notifications(c echo.Context) error {
	uid, err := h.authenticate(c)
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}

	metrics.LiveStreams.WithLabelValues("notifications").Inc()
	defer metrics.LiveStreams.WithLabelValues("notifications").Dec()

	ctx := c.Request().Context()
	deliveries, release, err := h.bus.Subscribe(ctx, "notify:"+uid)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", uid).Msg("notification stream subscribe failed")
		_ = conn.Close()
		return nil
	}
	defer release()

	h.markOnline(ctx, uid)
	defer h.markOffline(uid)

	// Inbound frames are ignored; the read loop only serves pong handling
	// and close detection.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(maxControlSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.pump(conn, deliveries, closed)
	return nil
}

// pump forwards bus deliveries to the socket until either side goes away.
func (h *Handler) pump(conn *websocket.Conn, deliveries <-chan []byte, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-closed:
			return
		case payload, ok := <-deliveries:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) markOnline(ctx context.Context, uid string) {
	if err := h.presence.SetOnline(ctx, uid); err != nil {
		h.log.Warn().Err(err).Str("user_id", uid).Msg("presence set online failed")
	}
}

func (h *Handler) markOffline(uid string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.presence.SetOffline(ctx, uid); err != nil {
		h.log.Warn().Err(err).Str("user_id", uid).Msg("presence set offline failed")
	}
}
