package chat

import (
	"reflect"
	"testing"
)

func TestLineFramer_SplitsLines(t *testing.T) {
	f := NewLineFramer(nil)

	lines := f.Feed([]byte("login alice\r\nsay hi\r\n"))
	want := []string{"login alice", "say hi"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	if f.Pending() != 0 {
		t.Fatalf("expected empty buffer, %d bytes pending", f.Pending())
	}
}

func TestLineFramer_CarriesPartialLine(t *testing.T) {
	f := NewLineFramer(nil)

	if lines := f.Feed([]byte("say hel")); lines != nil {
		t.Fatalf("partial line emitted: %q", lines)
	}
	if f.Pending() != 7 {
		t.Fatalf("expected 7 pending bytes, got %d", f.Pending())
	}

	lines := f.Feed([]byte("lo\r\n"))
	if !reflect.DeepEqual(lines, []string{"say hello"}) {
		t.Fatalf("got %q", lines)
	}
}

func TestLineFramer_TerminatorSplitAcrossReads(t *testing.T) {
	f := NewLineFramer(nil)

	if lines := f.Feed([]byte("look\r")); lines != nil {
		t.Fatalf("line emitted before full terminator: %q", lines)
	}
	lines := f.Feed([]byte("\nwho\r\n"))
	if !reflect.DeepEqual(lines, []string{"look", "who"}) {
		t.Fatalf("got %q", lines)
	}
}

func TestLineFramer_EmptyLines(t *testing.T) {
	f := NewLineFramer(nil)

	lines := f.Feed([]byte("\r\n\r\n"))
	if !reflect.DeepEqual(lines, []string{"", ""}) {
		t.Fatalf("got %q", lines)
	}
}

func TestLineFramer_BareLFIsNotATerminator(t *testing.T) {
	f := NewLineFramer(nil)

	if lines := f.Feed([]byte("say a\nb")); lines != nil {
		t.Fatalf("LF alone terminated a line: %q", lines)
	}
	lines := f.Feed([]byte("\r\n"))
	if !reflect.DeepEqual(lines, []string{"say a\nb"}) {
		t.Fatalf("got %q", lines)
	}
}
