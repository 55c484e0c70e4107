package chat

import "strings"

// Handler processes one command for a session. arg is the trimmed remainder
// of the line after the verb.
type Handler func(s *Session, arg string) Outcome

// Room is a scope of command handlers plus a set of member sessions sharing
// broadcast visibility. All methods run on the registry goroutine.
type Room interface {
	Add(s *Session)
	Remove(s *Session)
	Broadcast(line string)
	Handle(s *Session, line string) Outcome
	Knows(verb string) bool
}

// baseRoom carries the behavior every room variant shares: an
// insertion-ordered member list, broadcast, and a verb table built once at
// construction. Variants adjust behavior by replacing the unknown fallback
// and adding entries to handlers, never by inspecting verbs at dispatch time.
type baseRoom struct {
	reg      *Registry
	members  []*Session
	handlers map[string]Handler
	unknown  func(s *Session, verb string) Outcome
}

func newBaseRoom(reg *Registry) baseRoom {
	b := baseRoom{
		reg:      reg,
		handlers: make(map[string]Handler),
	}
	b.handlers["logout"] = func(s *Session, arg string) Outcome {
		return Terminate
	}
	b.unknown = func(s *Session, verb string) Outcome {
		sendLine(s, "Unknown command: "+verb)
		return Continue
	}
	return b
}

func (b *baseRoom) Add(s *Session) {
	b.members = append(b.members, s)
}

func (b *baseRoom) Remove(s *Session) {
	for i, m := range b.members {
		if m == s {
			b.members = append(b.members[:i], b.members[i+1:]...)
			return
		}
	}
}

// Broadcast delivers line to every current member in membership order. The
// member list cannot change mid-broadcast since all mutation happens on the
// registry goroutine.
func (b *baseRoom) Broadcast(line string) {
	for _, m := range b.members {
		sendLine(m, line)
	}
}

// Handle dispatches one line of input: empty lines are a no-op, the first
// whitespace run separates verb from argument, and unmatched verbs fall
// through to the room's unknown handler.
func (b *baseRoom) Handle(s *Session, line string) Outcome {
	if strings.TrimSpace(line) == "" {
		return Continue
	}
	verb, arg := splitCommand(line)
	if h, ok := b.handlers[verb]; ok {
		return h(s, arg)
	}
	return b.unknown(s, verb)
}

// Knows reports whether verb has a handler in this room's table.
func (b *baseRoom) Knows(verb string) bool {
	_, ok := b.handlers[verb]
	return ok
}

// splitCommand splits a line into its verb and the trimmed remainder.
func splitCommand(line string) (verb, arg string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// sendLine queues one outbound line without blocking the registry. A slow or
// gone client drops the line rather than stalling everyone else.
func sendLine(s *Session, line string) {
	select {
	case s.Out <- line:
	default:
	}
}
