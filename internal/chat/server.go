package chat

import (
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Server struct {
	addr      string
	outBuffer int
	logger    zerolog.Logger
	reg       *Registry
	listener  net.Listener
}

func NewServer(addr, name string, eventBuffer, outBuffer int, logger zerolog.Logger) *Server {
	if outBuffer <= 0 {
		outBuffer = 32
	}
	return &Server{
		addr:      addr,
		outBuffer: outBuffer,
		logger:    logger,
		reg:       NewRegistry(name, eventBuffer, logger),
	}
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go s.reg.Run()
	go s.acceptLoop(ln)

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("server started")
	return nil
}

// Addr reports the bound listen address, useful when addr was ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop() {
	s.logger.Info().Msg("shutting down")

	if s.listener != nil {
		s.listener.Close()
	}

	s.reg.Stop()
	s.reg.Wait()

	s.logger.Info().Msg("shutdown complete")
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			// listener closed, normal shutdown
			return
		}

		sess := &Session{
			ID:   uuid.NewString(),
			Conn: conn,
			Out:  make(chan string, s.outBuffer),
		}
		s.logger.Info().Str("sid", sess.ID).Str("addr", conn.RemoteAddr().String()).Msg("client connected")

		StartOutboundWriter(conn, sess.Out)
		select {
		case s.reg.Events() <- Event{Type: EventJoin, Session: sess}:
		case <-s.reg.Stopping():
			_ = conn.Close()
			close(sess.Out)
			return
		}
		go ReadLoop(sess, s.reg.Events(), s.reg.Stopping())
	}
}
