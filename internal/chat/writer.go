package chat

import (
	"bufio"
	"net"
)

// StartOutboundWriter drains out onto conn, one protocol line per message.
// Best-effort: if the connection breaks, the writer just stops and the read
// side reports the failure.
func StartOutboundWriter(conn net.Conn, out <-chan string) {
	go func() {
		w := bufio.NewWriter(conn)
		for msg := range out {
			if _, err := w.WriteString(msg + "\r\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}()
}
