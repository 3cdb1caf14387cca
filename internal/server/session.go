package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

// Message types.
const (
	TypeRun     = "run"     // client: start a sweep for Job
	TypeStop    = "stop"    // client: abort the running sweep
	TypeFrame   = "frame"   // server: one sweep frame
	TypeResult  = "result"  // server: final result after the last frame
	TypeStopped = "stopped" // server: acknowledges stop
	TypeError   = "error"   // server: request rejected
)

// Message is the envelope for both directions.
type Message struct {
	Type   string                  `json:"type"`
	Job    *model.Job              `json:"job,omitempty"`
	Frame  *model.SweepFrame       `json:"frame,omitempty"`
	Result *model.SimulationResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// session serves one connection. At most one sweep streams at a time;
// a new run replaces the current one.
type session struct {
	conn       *websocket.Conn
	frameDelay time.Duration
	limits     model.Limits
	log        *log.Entry

	writeMu sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(conn *websocket.Conn, frameDelay time.Duration, limits model.Limits, entry *log.Entry) *session {
	return &session{conn: conn, frameDelay: frameDelay, limits: limits, log: entry}
}

func (s *session) send(msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(&msg)
}

func (s *session) readLoop(ctx context.Context) {
	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Warn("sweep connection closed")
			}
			return
		}

		switch msg.Type {
		case TypeRun:
			if msg.Job == nil {
				s.reject("run message has no job")
				continue
			}
			s.stop()
			s.start(ctx, *msg.Job)
		case TypeStop:
			s.stop()
			if err := s.send(Message{Type: TypeStopped}); err != nil {
				return
			}
		default:
			s.reject("unknown message type " + msg.Type)
		}
	}
}

func (s *session) reject(reason string) {
	s.log.WithField("reason", reason).Warn("sweep request rejected")
	_ = s.send(Message{Type: TypeError, Error: reason})
}

func (s *session) start(ctx context.Context, job model.Job) {
	if err := job.Validate(); err != nil {
		s.reject(err.Error())
		return
	}
	// Size is bounded before any plate or frame is computed.
	if problems := s.limits.Check(job); len(problems) > 0 {
		s.reject("job outside the accepted limits: " + strings.Join(problems, "; "))
		return
	}
	sweep, err := engine.RunSweep(job)
	if err != nil {
		s.reject(err.Error())
		return
	}
	result, err := engine.Run(job)
	if err != nil {
		s.reject(err.Error())
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	s.log.WithFields(log.Fields{
		"job":    job.ID,
		"plates": job.Stack.PlateCount,
		"frames": sweep.Len(),
	}).Info("sweep started")

	go func() {
		defer close(done)
		s.stream(ctx, sweep, result)
	}()
}

func (s *session) stream(ctx context.Context, sweep *engine.Sweep, result model.SimulationResult) {
	var tick <-chan time.Time
	if s.frameDelay > 0 {
		ticker := time.NewTicker(s.frameDelay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for k, frame := range sweep.All() {
		if k > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}
		if err := s.send(Message{Type: TypeFrame, Frame: &frame}); err != nil {
			return
		}
	}

	if err := s.send(Message{Type: TypeResult, Result: &result}); err != nil {
		return
	}
	s.log.WithFields(log.Fields{
		"job":    result.ID,
		"failed": result.Summary.Failed,
	}).Info("sweep finished")
}

// stop cancels the running sweep and waits for it to exit.
func (s *session) stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
}
