package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pm1-tools/pm1/plgn"
	"github.com/pm1-tools/pm1/pm1"
)

var factorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsSendQueueSize = 1024
	wsWriteTimeout  = 5 * time.Second
)

var (
	errWSSlowConsumer  = errors.New("websocket client too slow for step stream")
	errWSSessionClosed = errors.New("websocket session closed")
)

// sanitizeLogParam replaces line breaks and control characters so user input
// cannot forge log lines.
func sanitizeLogParam(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			b.WriteString("\\n")
		} else if r < 0x20 && r != '\t' {
			b.WriteRune('\uFFFD')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type wsEnvelope struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status,omitempty"`
}

type wsConn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
	NextReader() (messageType int, r io.Reader, err error)
}

// wsFactorSession serialises envelopes onto one connection through a bounded
// queue. A client that falls behind is disconnected rather than buffered.
type wsFactorSession struct {
	conn       wsConn
	sendMu     sync.Mutex
	sendCh     chan wsEnvelope
	stopCh     chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
	finishOnce sync.Once
	closed     atomic.Bool
}

func newWSFactorSession(conn wsConn, queueSize int) *wsFactorSession {
	if queueSize <= 0 {
		queueSize = wsSendQueueSize
	}
	s := &wsFactorSession{
		conn:       conn,
		sendCh:     make(chan wsEnvelope, queueSize),
		stopCh:     make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

func (s *wsFactorSession) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case <-s.stopCh:
			return
		case msg, ok := <-s.sendCh:
			if !ok {
				return
			}
			deadline := time.Now().Add(wsWriteTimeout)
			_ = s.conn.SetWriteDeadline(deadline)
			if err := s.conn.WriteJSON(msg); err != nil {
				s.closeWithCode(websocket.CloseInternalServerErr, "write failed")
				return
			}
		}
	}
}

func (s *wsFactorSession) send(msg wsEnvelope) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed.Load() {
		return errWSSessionClosed
	}
	select {
	case s.sendCh <- msg:
		return nil
	default:
		s.closeWithCode(websocket.CloseTryAgainLater, "client too slow for step stream")
		return errWSSlowConsumer
	}
}

func (s *wsFactorSession) closeWithCode(code int, reason string) {
	s.closed.Store(true)
	s.closeOnce.Do(func() {
		close(s.stopCh)
		deadline := time.Now().Add(wsWriteTimeout)
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = s.conn.Close()
	})
}

// finish flushes queued envelopes and closes the connection.
func (s *wsFactorSession) finish() {
	s.finishOnce.Do(func() {
		s.sendMu.Lock()
		wasClosed := s.closed.Swap(true)
		if !wasClosed {
			close(s.sendCh)
		}
		s.sendMu.Unlock()
		<-s.writerDone
		s.closeOnce.Do(func() {
			_ = s.conn.Close()
		})
	})
}

// streamPlugin forwards every search transition to the websocket client. A
// failed send aborts the search.
type streamPlugin struct {
	plgn.DefaultPlugin
	session *wsFactorSession
}

func (p *streamPlugin) OnStep(ev pm1.Event) error {
	return p.session.send(wsEnvelope{Type: "step", Data: ev})
}

func (h *factorHandler) stream(c *gin.Context) {
	conn, err := factorUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[deploy] websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	_, message, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[deploy] websocket read failed: %v", err)
		return
	}

	n, err := parseFactorRequest(message)
	if err != nil {
		log.Printf("[deploy] websocket bad request payload=%s", sanitizeLogParam(string(message)))
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error(), Status: http.StatusBadRequest})
		return
	}

	session := newWSFactorSession(conn, wsSendQueueSize)
	defer session.finish()

	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				session.closeWithCode(websocket.CloseNormalClosure, "client disconnected")
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	conf := h.searchConfig(ctx)
	conf.Plugins = append(conf.Plugins, &streamPlugin{session: session})

	log.Printf("[deploy] (ws) factor request number=%s", n)
	start := time.Now()
	res, err := pm1.FindFactors(n, conf)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, errWSSessionClosed) || errors.Is(err, errWSSlowConsumer) || errors.Is(err, context.Canceled) {
			log.Printf("[deploy] (ws) stream aborted number=%s error=%v", n, err)
			return
		}
		log.Printf("[deploy] (ws) factor failed number=%s error=%v", n, err)
		_ = session.send(wsEnvelope{Type: "error", Error: err.Error(), Status: statusFor(err)})
		return
	}

	if err := session.send(wsEnvelope{Type: "result", Data: newFactorResponse(res, duration)}); err != nil {
		log.Printf("[deploy] websocket send result failed: %v", err)
	}
	log.Printf("[deploy] (ws) factor completed number=%s state=%s steps=%d duration=%s", n, res.State, res.Steps, duration)
}
