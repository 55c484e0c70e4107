package chat

import "bytes"

// crlf is the protocol line terminator.
var crlf = []byte("\r\n")

// LineFramer splits a raw byte stream into lines at a two-byte terminator.
// Partial lines are carried across calls, so a terminator split between two
// reads is handled. There is no cap on the buffered partial line; callers
// needing bounded memory must impose their own limit.
type LineFramer struct {
	term []byte
	buf  []byte
}

func NewLineFramer(term []byte) *LineFramer {
	if len(term) == 0 {
		term = crlf
	}
	return &LineFramer{term: term}
}

// Feed consumes the next chunk of the stream and returns every line completed
// by it, terminators stripped, in arrival order. A chunk that completes no
// line returns nil and the bytes stay buffered.
func (f *LineFramer) Feed(p []byte) []string {
	f.buf = append(f.buf, p...)

	var lines []string
	for {
		i := bytes.Index(f.buf, f.term)
		if i < 0 {
			break
		}
		lines = append(lines, string(f.buf[:i]))
		f.buf = f.buf[i+len(f.term):]
	}
	if len(f.buf) == 0 {
		f.buf = nil
	}
	return lines
}

// Pending reports how many bytes of an incomplete line are buffered.
func (f *LineFramer) Pending() int {
	return len(f.buf)
}
