package chat

import (
	"time"

	"github.com/rs/zerolog"
)

// Registry is the single serialization point of the server. Its Run goroutine
// is the only place the name directory, room member lists, and room
// transitions are ever touched, so a broadcast always sees one consistent
// member snapshot and per-session commands run strictly in arrival order.
type Registry struct {
	events chan Event
	stopCh chan struct{}
	doneCh chan struct{}
	logger zerolog.Logger

	serverName string
	users      map[string]*Session   // directory: name -> logged-in session
	live       map[*Session]struct{} // every not-yet-closed session
	mainRoom   Room
}

func NewRegistry(serverName string, buffer int, logger zerolog.Logger) *Registry {
	if buffer <= 0 {
		buffer = 64
	}
	r := &Registry{
		events:     make(chan Event, buffer),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		logger:     logger,
		serverName: serverName,
		users:      make(map[string]*Session),
		live:       make(map[*Session]struct{}),
	}
	r.mainRoom = newChatRoom(r)
	return r
}

func (r *Registry) Events() chan<- Event {
	return r.events
}

// Stop signals the Run loop to exit.
func (r *Registry) Stop() {
	close(r.stopCh)
}

// Wait blocks until the Run loop has completely finished.
func (r *Registry) Wait() {
	<-r.doneCh
}

// Stopping is closed once Stop has been called. Producers must select
// against it when posting events; nothing is consumed afterwards, so an
// unguarded send can block forever on a full buffer.
func (r *Registry) Stopping() <-chan struct{} {
	return r.stopCh
}

func (r *Registry) Run() {
	defer close(r.doneCh)

	for {
		select {
		case ev := <-r.events:
			start := time.Now()
			eventType := ""

			switch ev.Type {
			case EventJoin:
				eventType = "join"
				r.handleJoin(ev.Session)
				ConnectedSessions.Set(float64(len(r.live)))
			case EventLine:
				eventType = "line"
				r.handleLine(ev.Session, ev.Text)
				ConnectedSessions.Set(float64(len(r.live)))
			case EventLeave:
				eventType = "leave"
				r.handleLeave(ev.Session)
				ConnectedSessions.Set(float64(len(r.live)))
			}

			EventsTotal.WithLabelValues(eventType).Inc()
			DispatchDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
		case <-r.stopCh:
			r.shutdown()
			return
		}
	}
}

func (r *Registry) handleJoin(s *Session) {
	r.live[s] = struct{}{}
	r.moveTo(s, newLoginRoom(r))
	r.logger.Info().Str("sid", s.ID).Msg("session joined")
}

func (r *Registry) handleLine(s *Session, line string) {
	if s.closed {
		return
	}
	// Only verbs from the room's own table become label values; anything
	// else collapses to one child so client input cannot grow the metric.
	if verb, _ := splitCommand(line); verb != "" {
		if !s.room.Knows(verb) {
			verb = "unknown"
		}
		CommandsTotal.WithLabelValues(verb).Inc()
	}
	if s.room.Handle(s, line) == Terminate {
		r.terminate(s, "logout")
	}
}

func (r *Registry) handleLeave(s *Session) {
	r.terminate(s, "disconnect")
}

// moveTo is the atomic room transition: the session fully leaves its current
// room before entering the next one, so it never receives a stale broadcast.
func (r *Registry) moveTo(s *Session, room Room) {
	if s.room != nil {
		s.room.Remove(s)
	}
	s.room = room
	room.Add(s)
}

// terminate tears a session down exactly once. Explicit logout and abrupt
// disconnect both land here, so the second of the two is a no-op.
func (r *Registry) terminate(s *Session, reason string) {
	if s.closed {
		return
	}
	s.closed = true

	r.moveTo(s, newLogoutRoom(r))
	delete(r.live, s)

	// Closing Out stops the writer goroutine; closing the socket stops the
	// read loop, whose trailing leave event hits the closed check above.
	close(s.Out)
	if s.Conn != nil {
		_ = s.Conn.Close()
	}

	r.logger.Info().Str("sid", s.ID).Str("name", s.Name).Str("reason", reason).Msg("session closed")
}

func (r *Registry) shutdown() {
	for s := range r.live {
		r.terminate(s, "shutdown")
	}
	ConnectedSessions.Set(0)
}

// checkName validates a login attempt against the directory. Registration
// itself happens when the chat room admits the session.
func (r *Registry) checkName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if _, taken := r.users[name]; taken {
		return ErrNameTaken
	}
	return nil
}
