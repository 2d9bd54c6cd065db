package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/telemetry"
)

const writeWait = 5 * time.Second

var ErrUnknownAction = errors.New("server: unknown action")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Action names a client request or a server push.
const (
	ActionSessionCreated = "session_created"
	ActionRun            = "run"
	ActionLoad           = "load"
	ActionTogglePause    = "toggle_pause"
	ActionStop           = "stop"
	ActionStepForward    = "step_forward"
	ActionStepBackward   = "step_backward"
	ActionSetSpeed       = "set_speed"
	ActionState          = "state"
	ActionStarted        = "started"
	ActionFrame          = "frame"
	ActionFinished       = "finished"
	ActionError          = "error"
)

// ClientMessage is what a websocket client sends. Run and load carry the
// fields of a RunRequest; set_speed carries SpeedMs.
type ClientMessage struct {
	Action string `json:"action"`
	RunRequest
	SpeedMs *int `json:"speedMs,omitempty"`
}

// ServerMessage is every push to the client. Only the fields of the action
// are set.
type ServerMessage struct {
	Action    string             `json:"action"`
	SessionID string             `json:"sessionId,omitempty"`
	Algorithm *catalog.Entry     `json:"algorithm,omitempty"`
	Start     *grid.Point        `json:"start,omitempty"`
	End       *grid.Point        `json:"end,omitempty"`
	Entry     *playback.Entry    `json:"entry,omitempty"`
	State     *playback.Snapshot `json:"state,omitempty"`
	Result    *playback.Result   `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// session is one websocket connection and the controller it drives. The
// session observes its own controller and pushes every step as a frame.
type session struct {
	srv    *Server
	id     string
	ws     *websocket.Conn
	ctrl   *playback.Controller
	logger *slog.Logger

	writeMu sync.Mutex

	mu  sync.Mutex
	run *telemetry.RunObserver
}

func (s *Server) handleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ctx := c.Request.Context()
	sess := &session{srv: s, id: uuid.New().String(), ws: ws}
	sess.logger = s.logger.With("session", sess.id)
	sess.ctrl = playback.New(
		playback.WithSpeed(s.speed),
		playback.WithHistoryLimit(s.historyLimit),
		playback.WithLogger(sess.logger),
		playback.WithObserver(sess),
	)

	s.metrics.ActiveSessions.Inc()
	defer s.metrics.ActiveSessions.Dec()
	defer sess.ctrl.Stop()
	// A blocked read only returns once the connection closes.
	unwatch := context.AfterFunc(ctx, func() { ws.Close() })
	defer unwatch()

	sess.logger.Info("session opened")
	sess.send(ServerMessage{Action: ActionSessionCreated, SessionID: sess.id})

	for {
		var msg ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Warn("session read failed", "error", err)
			}
			sess.logger.Info("session closed")
			return
		}
		sess.handle(ctx, msg)
	}
}

func (s *session) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Action {
	case ActionRun, ActionLoad:
		if err := s.start(ctx, msg); err != nil {
			s.fail(err)
			return
		}
	case ActionTogglePause:
		s.ctrl.TogglePause()
	case ActionStop:
		s.ctrl.Stop()
	case ActionStepForward:
		s.ctrl.StepForward()
	case ActionStepBackward:
		s.ctrl.StepBackward()
	case ActionSetSpeed:
		if msg.SpeedMs == nil || *msg.SpeedMs < 0 {
			s.fail(errors.New("set_speed needs a non-negative speedMs"))
			return
		}
		s.ctrl.SetSpeed(time.Duration(*msg.SpeedMs) * time.Millisecond)
	case ActionState:
	default:
		s.fail(fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action))
		return
	}
	s.sendState()
}

// start replaces whatever the session was playing. The old run is stopped
// before the telemetry observer is swapped so its finish is recorded
// against the algorithm that produced it.
func (s *session) start(ctx context.Context, msg ClientMessage) error {
	cfg, err := msg.RunRequest.Config()
	if err != nil {
		return err
	}
	p, err := s.srv.prepare(cfg)
	if err != nil {
		return err
	}

	s.ctrl.Stop()
	if msg.SpeedMs != nil && *msg.SpeedMs >= 0 {
		s.ctrl.SetSpeed(time.Duration(*msg.SpeedMs) * time.Millisecond)
	}
	s.mu.Lock()
	s.run = s.srv.metrics.Observer(string(p.family), string(p.entry.Name))
	s.mu.Unlock()

	started := ServerMessage{Action: ActionStarted, Algorithm: &p.entry}
	if p.input.Grid != nil {
		started.Start, started.End = &p.input.Start, &p.input.End
	}
	s.send(started)
	s.logger.Info("run", "family", p.family, "algorithm", p.entry.Name, "action", msg.Action)

	if msg.Action == ActionLoad {
		return s.ctrl.Load(ctx, p.producer)
	}
	return s.ctrl.Start(ctx, p.producer)
}

func (s *session) runObserver() *telemetry.RunObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run
}

func (s *session) OnStep(e playback.Entry) {
	if o := s.runObserver(); o != nil {
		o.OnStep(e)
	}
	st := s.ctrl.State()
	s.send(ServerMessage{Action: ActionFrame, Entry: &e, State: &st})
}

func (s *session) OnFinish(r playback.Result) {
	if o := s.runObserver(); o != nil {
		o.OnFinish(r)
	}
	s.send(ServerMessage{Action: ActionFinished, Result: &r})
}

func (s *session) sendState() {
	st := s.ctrl.State()
	s.send(ServerMessage{Action: ActionState, State: &st})
}

func (s *session) fail(err error) {
	s.logger.Debug("request rejected", "error", err)
	s.send(ServerMessage{Action: ActionError, Error: err.Error()})
}

// send serializes writes; the run loop and the read loop both push.
func (s *session) send(m ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.ws.WriteJSON(m); err != nil {
		s.logger.Warn("failed to write websocket message", "action", m.Action, "error", err)
	}
}
