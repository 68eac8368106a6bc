package redisserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// Config holds the Redis server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// MaxClients bounds concurrently served connections (default: 1024).
	// Connections beyond the limit are refused with an error reply.
	MaxClients int
	// ReadTimeout is the timeout for reading a command once its first byte
	// has arrived (default: 30s).
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for writing a response (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout is the timeout for idle connections (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the maximum number of commands per second per IP.
	// Set to 0 to disable rate limiting.
	RateLimit int
	// Decoder selects the request framing: "resp" or "tokens".
	Decoder string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:      "127.0.0.1:6379",
		MaxClients:   1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    0,
		Decoder:      DecoderRESP,
	}
}

// Server represents the Redis protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	decoder Decoder
	metrics *metric.Registry
	logger  *slog.Logger

	lnMu       sync.Mutex
	ln         net.Listener
	acceptDone chan struct{} // closed when acceptLoop returns
	running    atomic.Bool

	group   *errgroup.Group
	rejects sync.WaitGroup
	conns   *cmap.Map[*Conn]
}

// Conn represents a single client connection.
type Conn struct {
	id       string
	netConn  net.Conn
	br       *bufio.Reader
	bw       *bufio.Writer
	remoteIP string
	logger   *slog.Logger

	closed atomic.Bool
}

func newConn(c net.Conn, id string, l *slog.Logger) *Conn {
	return &Conn{
		id:       id,
		netConn:  c,
		br:       bufio.NewReader(c),
		bw:       bufio.NewWriter(c),
		remoteIP: clientIP(c.RemoteAddr()),
		logger:   l,
	}
}

// Close closes the underlying connection once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// ID returns the connection id.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a new Redis protocol server over the shared stores.
// reg may be nil to disable metrics.
func New(cfg *Config, store *memory.Store, params *memory.ConfigStore, reg *metric.Registry, l *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if l == nil {
		l = slog.Default()
	}

	dec, err := NewDecoder(cfg.Decoder)
	if err != nil {
		return nil, err
	}

	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = DefaultConfig().MaxClients
	}
	group := new(errgroup.Group)
	group.SetLimit(maxClients)

	s := &Server{
		cfg:     cfg,
		decoder: dec,
		metrics: reg,
		logger:  l,
		group:   group,
		conns:   cmap.New[*Conn](),
	}

	s.handler = NewCommandHandler(store, params,
		WithMetrics(reg),
		WithRateLimit(cfg.RateLimit),
		WithHandlerLogger(l),
	)

	return s, nil
}

// ListenAndServe listens on cfg.Address and serves until Shutdown is called
// or ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until Shutdown is called or ctx is
// canceled. It returns nil on a clean stop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	acceptDone := make(chan struct{})
	defer close(acceptDone)

	s.lnMu.Lock()
	s.ln = ln
	s.acceptDone = acceptDone
	s.lnMu.Unlock()

	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String(), "max_clients", s.cfg.MaxClients)

	stop := context.AfterFunc(ctx, func() {
		s.running.Store(false)
		_ = ln.Close()
	})
	defer stop()

	return s.acceptLoop(ctx, ln)
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.lnMu.Lock()
	defer s.lnMu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting connections and waits for active connections to
// finish. When ctx expires first, remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error

	s.lnMu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	acceptDone := s.acceptDone
	s.lnMu.Unlock()

	// No TryGo or rejects.Add may run concurrently with the waits below.
	if acceptDone != nil {
		<-acceptDone
	}

	done := make(chan struct{})
	go func() {
		_ = s.group.Wait()
		s.rejects.Wait()
		close(done)
	}()

	select {
	case <-done:
		return firstErr
	case <-ctx.Done():
	}

	open := s.conns.Values()
	s.logger.Warn("closing active connections", "count", len(open))
	for _, c := range open {
		_ = c.Close()
	}
	<-done
	return ctx.Err()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return fmt.Errorf("accept: %w", err)
		}

		id, err := domain.GenerateConnID()
		if err != nil {
			s.logger.Error("generate connection id", "error", err)
			_ = nc.Close()
			continue
		}

		cctx := logger.WithConnID(logger.WithLogger(ctx, s.logger), id)
		c := newConn(nc, id, logger.L(cctx).With("remote", nc.RemoteAddr().String()))

		if !s.group.TryGo(func() error {
			s.serveConn(c)
			return nil
		}) {
			s.rejects.Add(1)
			go func() {
				defer s.rejects.Done()
				s.reject(c)
			}()
		}
	}
}

// reject refuses a connection the pool cannot admit. It runs on its own
// goroutine so a peer that never reads cannot stall the accept loop.
func (s *Server) reject(c *Conn) {
	defer c.Close()

	s.metrics.ConnRejected("max_clients")
	c.logger.Warn("connection refused", "reason", domain.ErrMaxClients.Message)

	_ = c.netConn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = resp.WriteReply(c.bw, errorReply(domain.ErrMaxClients))
	_ = c.bw.Flush()
}

func (s *Server) serveConn(c *Conn) {
	s.metrics.ConnOpened()
	s.conns.Set(c.id, c)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic recovered", "error", r, "stack", string(debug.Stack()))
		}
		s.conns.Delete(c.id)
		_ = c.Close()
		s.metrics.ConnClosed()
		c.logger.Debug("connection closed")
	}()

	// Shutdown may have swept open connections before this one registered.
	if !s.running.Load() {
		return
	}

	c.logger.Debug("connection accepted")

	readTimeout := s.cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	for {
		// First byte: allow idle timeout (connection can stay idle between commands).
		if err := c.netConn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			s.logReadError(c, err)
			return
		}

		// After first byte: tighten to per-command read timeout.
		if err := c.netConn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		cmd, err := s.decoder.Decode(c.br)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrProtocolLimit):
				c.logger.Warn("protocol limit exceeded", "error", err)
				_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = resp.WriteReply(c.bw, errorReply(domain.ErrProtocolLimit))
				_ = c.bw.Flush()
				return
			case errors.Is(err, domain.ErrMalformedFrame):
				c.logger.Debug("malformed frame", "error", err)
				_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = resp.WriteReply(c.bw, errorReply(domain.ErrUnknownCommand))
				if err := c.bw.Flush(); err != nil {
					return
				}
				continue
			default:
				s.logReadError(c, err)
				return
			}
		}

		// Set write deadline before the handler fills the buffer.
		if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := s.handler.Handle(c, cmd); err != nil {
			c.logger.Debug("write error", "error", err)
			return
		}
		if err := c.bw.Flush(); err != nil {
			c.logger.Debug("write error", "error", err)
			return
		}
	}
}

func (s *Server) logReadError(c *Conn, err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.logger.Debug("connection timed out")
		return
	}
	c.logger.Debug("connection read error", "error", err)
}
