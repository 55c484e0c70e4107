package chat

import (
	"errors"
	"net"
)

// Session is the server-side state for one connected client. A session
// occupies exactly one Room at any instant; room and closed are owned by the
// registry goroutine and must never be touched from other goroutines.
type Session struct {
	ID   string
	Conn net.Conn
	Name string      // empty until login succeeds, immutable afterwards
	Out  chan string // outbound lines, drained by the writer goroutine

	room   Room
	closed bool
}

// Outcome is what dispatching one command reports back to the registry loop.
type Outcome int

const (
	Continue Outcome = iota
	Terminate
)

type EventType int

const (
	EventJoin EventType = iota
	EventLine
	EventLeave
)

type Event struct {
	Type    EventType
	Session *Session
	Text    string
}

var (
	ErrNameTaken = errors.New("name_taken")
	ErrNameEmpty = errors.New("name_empty")
)
