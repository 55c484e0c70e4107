package chat

// ReadLoop pulls raw bytes off the session's socket, frames them into lines,
// and posts one EventLine per line to the registry. It never interprets
// commands itself; every line, in arrival order, is dispatched by the
// registry goroutine against whichever room the session occupies by then.
//
// Any read error, including the peer closing the connection and the registry
// closing it after a logout, ends the loop with a trailing EventLeave. Every
// post selects against stopping: once the registry shuts down nothing drains
// the event channel, and the loop must still exit.
func ReadLoop(s *Session, events chan<- Event, stopping <-chan struct{}) {
	defer func() {
		_ = s.Conn.Close()
	}()

	framer := NewLineFramer(nil)
	buf := make([]byte, 4096)

	for {
		n, err := s.Conn.Read(buf)
		if n > 0 {
			for _, line := range framer.Feed(buf[:n]) {
				select {
				case events <- Event{Type: EventLine, Session: s, Text: line}:
				case <-stopping:
					return
				}
			}
		}
		if err != nil {
			select {
			case events <- Event{Type: EventLeave, Session: s}:
			case <-stopping:
			}
			return
		}
	}
}
