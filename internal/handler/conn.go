package handler

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

var errSenderClosed = errors.New("sender closed")

// wsSender wraps a websocket connection behind the session.Sender
// interface. gofiber's websocket.Conn does not allow concurrent writes,
// so all sends serialize on writeMu.
type wsSender struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	writeMu      sync.Mutex
	closed       bool
}

func newWSSender(conn *websocket.Conn, writeTimeout time.Duration) *wsSender {
	return &wsSender{conn: conn, writeTimeout: writeTimeout}
}

// Send writes one text message. After the first write error the sender
// is marked closed and further sends are dropped silently; the read loop
// notices the broken connection and triggers roster cleanup.
func (s *wsSender) Send(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed {
		return errSenderClosed
	}

	if s.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.closed = true
		return err
	}
	return nil
}
