package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/internal/core/srv"
	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/pkg/safe"
	"github.com/ripplelabs/ripple-api/pkg/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

type wsClientRequest struct {
	Operation string `json:"operation"` // subscribe | unsubscribe
	Topic     string `json:"topic"`
}

// Websocket upgrades /connect and relays tower topics the client subscribes
// to. Every subscription is authorized against the claims before it attaches.
func Websocket(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := v1.InjectTokenClaim(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		core.Metrics().WsConnect()
		defer core.Metrics().WsDisconnect()

		session := &wsSession{
			core:   core,
			conn:   conn,
			userID: claims.User,
			topics: make(map[string]chan srv.PublishData),
			send:   make(chan srv.PublishData, 128),
			done:   make(chan struct{}),
		}
		defer session.close()

		go safe.Run(session.writePump)
		session.readPump(c)
	}
}

type wsSession struct {
	core   *core.Core
	conn   *websocket.Conn
	userID string

	mu     sync.Mutex
	topics map[string]chan srv.PublishData

	send chan srv.PublishData
	done chan struct{}

	closeOnce sync.Once
}

func (s *wsSession) close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		for topic, ch := range s.topics {
			s.core.Srv().Tower().Unsubscribe(topic, ch)
			delete(s.topics, topic)
		}
		s.conn.Close()
	})
}

func (s *wsSession) readPump(c *gin.Context) {
	s.conn.SetReadLimit(4096)
	s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var req wsClientRequest
		if err := s.conn.ReadJSON(&req); err != nil {
			return
		}

		switch req.Operation {
		case "subscribe":
			if !s.allowTopic(c, req.Topic) {
				continue
			}
			s.subscribe(req.Topic)
		case "unsubscribe":
			s.unsubscribe(req.Topic)
		}
	}
}

func (s *wsSession) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := s.conn.WriteJSON(data); err != nil {
				s.close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *wsSession) subscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exist := s.topics[topic]; exist {
		return
	}

	ch := s.core.Srv().Tower().Subscribe(topic)
	s.topics[topic] = ch

	go safe.Run(func() {
		for data := range ch {
			select {
			case s.send <- data:
			case <-s.done:
				return
			}
		}
	})
}

func (s *wsSession) unsubscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, exist := s.topics[topic]
	if !exist {
		return
	}
	delete(s.topics, topic)
	s.core.Srv().Tower().Unsubscribe(topic, ch)
}

// allowTopic gates subscriptions: own notifications, the public feed, spaces
// the user belongs to and journals the user may read.
func (s *wsSession) allowTopic(c *gin.Context, topic string) bool {
	switch {
	case topic == types.PublicFeedTopic():
		return true
	case topic == types.UserNotificationTopic(s.userID):
		return true
	case strings.HasPrefix(topic, "/space/"):
		spaceID := strings.TrimPrefix(topic, "/space/")
		ok, err := v1.NewSpaceLogic(c, s.core).IsUserInSpace(s.userID, spaceID)
		if err != nil {
			slog.Error("failed to authorize space topic", slog.String("topic", topic), slog.String("error", err.Error()))
			return false
		}
		return ok
	case strings.HasPrefix(topic, "/journal/"):
		journalID := strings.TrimPrefix(topic, "/journal/")
		if _, err := v1.NewJournalLogic(c, s.core).GetJournal(journalID); err != nil {
			return false
		}
		return true
	default:
		return false
	}
}
