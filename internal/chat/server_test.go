package chat

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

type testClient struct {
	conn net.Conn
	r    *bufio.Reader
}

func dialServer(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{conn: conn, r: bufio.NewReader(conn)}
}

func (c *testClient) send(t *testing.T, raw string) {
	t.Helper()
	if _, err := c.conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func (c *testClient) expect(t *testing.T, want string) {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := c.r.ReadString('\n')
	if err != nil {
		t.Fatalf("read (want %q): %v", want, err)
	}
	if got := strings.TrimRight(line, "\r\n"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func (c *testClient) expectEOF(t *testing.T) {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, err := c.r.ReadString('\n'); err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				t.Fatal("connection still open, expected close")
			}
			return
		}
	}
}

func TestServer_EndToEnd(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "TestChat", 128, 32, nopLogger())
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)

	a := dialServer(t, srv.Addr())
	a.expect(t, "Welcome to TestChat")
	a.send(t, "login alice\r\n")
	a.expect(t, "alice has entered the room.")

	b := dialServer(t, srv.Addr())
	b.expect(t, "Welcome to TestChat")
	b.send(t, "login alice\r\n")
	b.expect(t, `The name "alice" is taken.`)
	b.expect(t, "Please try again.")
	b.send(t, "login bob\r\n")
	b.expect(t, "bob has entered the room.")
	a.expect(t, "bob has entered the room.")

	// A command split across two writes still frames as one line.
	a.send(t, "say he")
	a.send(t, "llo\r\n")
	a.expect(t, "alice: hello")
	b.expect(t, "alice: hello")

	b.send(t, "who\r\n")
	b.expect(t, "The following are logged in:")
	b.expect(t, "alice")
	b.expect(t, "bob")

	b.send(t, "logout\r\n")
	a.expect(t, "bob has left the room.")
	b.expectEOF(t)
}

func TestServer_AbruptDisconnectFreesName(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "TestChat", 128, 32, nopLogger())
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)

	a := dialServer(t, srv.Addr())
	a.expect(t, "Welcome to TestChat")
	a.send(t, "login alice\r\n")
	a.expect(t, "alice has entered the room.")

	b := dialServer(t, srv.Addr())
	b.expect(t, "Welcome to TestChat")
	b.send(t, "login bob\r\n")
	b.expect(t, "bob has entered the room.")
	a.expect(t, "bob has entered the room.")

	// No logout, just a dropped socket.
	_ = b.conn.Close()
	a.expect(t, "bob has left the room.")

	c := dialServer(t, srv.Addr())
	c.expect(t, "Welcome to TestChat")
	c.send(t, "login bob\r\n")
	c.expect(t, "bob has entered the room.")
}
