package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/result"
)

// Session message types.
const (
	MessageLoad  = "load"
	MessageEdit  = "edit"
	MessageState = "state"
	MessageError = "error"
)

const wsWriteWait = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Inbound is a message from a session client.
type Inbound struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Op     string          `json:"op,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Outbound is the server's answer to every inbound message.
type Outbound struct {
	Type    string              `json:"type"`
	Text    string              `json:"text,omitempty"`
	Changed bool                `json:"changed,omitempty"`
	Diagram *result.ParseResult `json:"diagram,omitempty"`
	Error   *result.Error       `json:"error,omitempty"`
}

// session is one client's document. Messages are handled one at a time in
// arrival order, so every edit sees the text left by the previous one.
type session struct {
	s    *Server
	text string
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.Server.MaxBodyBytes)

	l := logger.FromContext(r.Context())
	l.Debug("session opened")
	sess := &session{s: s}
	for {
		var in Inbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Warn("session read failed", "err", err)
			}
			break
		}
		out := sess.handle(r, in)
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
			break
		}
		if err := conn.WriteJSON(out); err != nil {
			l.Warn("session write failed", "err", err)
			break
		}
	}
	l.Debug("session closed")
}

func (sess *session) handle(r *http.Request, in Inbound) Outbound {
	switch in.Type {
	case MessageLoad:
		sess.text = in.Text
		return sess.state(false)
	case MessageEdit:
		res, err := sess.s.ops.Apply(r.Context(), in.Op, sess.text, in.Params)
		if err != nil {
			e := result.NewError(result.TypeInvalidInput, err.Error(), "")
			return Outbound{Type: MessageError, Error: &e}
		}
		sess.text = res.Text
		return sess.state(res.Changed)
	default:
		e := result.NewError(result.TypeInvalidInput, "unknown message type "+in.Type, `use "load" or "edit"`)
		return Outbound{Type: MessageError, Error: &e}
	}
}

func (sess *session) state(changed bool) Outbound {
	res := sess.s.parse(sess.text)
	return Outbound{Type: MessageState, Text: sess.text, Changed: changed, Diagram: &res}
}
