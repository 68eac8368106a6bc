package redisserver

import (
	"errors"
	"log/slog"
	"math"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// maxExpireMillis keeps now+ttl representable as a time.Duration.
const maxExpireMillis = math.MaxInt64 / int64(time.Millisecond)

// errorReply converts an error to a RESP error reply.
// DomainErrors become "ERR <message>"; anything else is reported generically.
func errorReply(err error) resp.Reply {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return resp.Error("ERR " + de.Message)
	}
	return resp.Error("ERR " + err.Error())
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	limiters *cmap.Map[*rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newRateLimiter(requestsPerSecond int) *rateLimiter {
	return &rateLimiter{
		limiters: cmap.New[*rate.Limiter](),
		limit:    rate.Limit(requestsPerSecond),
		burst:    requestsPerSecond,
	}
}

// allow checks if a command from the given IP should be allowed.
func (rl *rateLimiter) allow(ip string) bool {
	l, ok := rl.limiters.Get(ip)
	if !ok {
		l, _ = rl.limiters.GetOrSet(ip, rate.NewLimiter(rl.limit, rl.burst))
	}
	return l.Allow()
}

// CommandHandler executes commands against the shared stores.
type CommandHandler struct {
	store       *memory.Store
	params      *memory.ConfigStore
	metrics     *metric.Registry
	logger      *slog.Logger
	rateLimiter *rateLimiter
}

// HandlerOption configures a CommandHandler.
type HandlerOption func(*CommandHandler)

// WithMetrics records every command in reg.
func WithMetrics(reg *metric.Registry) HandlerOption {
	return func(h *CommandHandler) {
		h.metrics = reg
	}
}

// WithRateLimit limits each client IP to n commands per second.
// n <= 0 disables rate limiting.
func WithRateLimit(n int) HandlerOption {
	return func(h *CommandHandler) {
		if n > 0 {
			h.rateLimiter = newRateLimiter(n)
		} else {
			h.rateLimiter = nil
		}
	}
}

// WithHandlerLogger sets the logger.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *CommandHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store *memory.Store, params *memory.ConfigStore, opts ...HandlerOption) *CommandHandler {
	h := &CommandHandler{
		store:  store,
		params: params,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle executes cmd for conn and writes the reply to the connection
// buffer. The caller flushes.
func (h *CommandHandler) Handle(conn *Conn, cmd domain.Command) error {
	if h.rateLimiter != nil && !h.rateLimiter.allow(conn.remoteIP) {
		h.metrics.ObserveCommand(cmd.Kind.String(), false, 0)
		return resp.WriteReply(conn.bw, errorReply(domain.ErrRateLimited))
	}

	start := time.Now()
	reply := h.Execute(cmd)
	h.metrics.ObserveCommand(cmd.Kind.String(), !reply.IsError(), time.Since(start))

	if reply.IsError() {
		conn.logger.Debug("command failed", "command", cmd.Name, "reply", reply.Str)
	}

	return resp.WriteReply(conn.bw, reply)
}

// Execute runs cmd and returns its reply. It never fails: errors are
// returned as error replies.
func (h *CommandHandler) Execute(cmd domain.Command) resp.Reply {
	switch cmd.Kind {
	case domain.KindPing:
		return h.handlePing(cmd.Args)
	case domain.KindEcho:
		return h.handleEcho(cmd.Args)
	case domain.KindSet:
		return h.handleSet(cmd.Args)
	case domain.KindGet:
		return h.handleGet(cmd.Args)
	case domain.KindConfig:
		return h.handleConfig(cmd.Args)
	case domain.KindUnknown:
		return errorReply(domain.ErrUnknownCommand)
	}
	return errorReply(domain.ErrUnknownCommand)
}

// PING [ignored...]
func (h *CommandHandler) handlePing(_ []string) resp.Reply {
	return resp.SimpleString("PONG")
}

// ECHO <message>
func (h *CommandHandler) handleEcho(args []string) resp.Reply {
	if len(args) != 1 {
		return errorReply(domain.WrongArity("echo"))
	}
	return resp.SimpleString(args[0])
}

// SET <key> <value> [PX milliseconds]
func (h *CommandHandler) handleSet(args []string) resp.Reply {
	if len(args) < 2 {
		return errorReply(domain.WrongArity("set"))
	}
	if len(args) != 2 && len(args) != 4 {
		return errorReply(domain.ErrSyntax)
	}

	key, value := args[0], args[1]

	var ttl time.Duration
	if len(args) == 4 {
		if !strings.EqualFold(args[2], "px") {
			return errorReply(domain.ErrSyntax)
		}
		ms, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return errorReply(domain.ErrNotInteger)
		}
		if ms <= 0 || ms > maxExpireMillis {
			return errorReply(domain.ErrInvalidExpire)
		}
		ttl = time.Duration(ms) * time.Millisecond
	}

	h.store.Set(key, value, ttl)
	return resp.SimpleString("OK")
}

// GET <key>
func (h *CommandHandler) handleGet(args []string) resp.Reply {
	if len(args) != 1 {
		return errorReply(domain.WrongArity("get"))
	}
	value, ok := h.store.Get(args[0])
	if !ok {
		return resp.NullBulk()
	}
	return resp.Bulk(value)
}

// CONFIG GET <parameter>
// CONFIG SET <parameter> <value>
func (h *CommandHandler) handleConfig(args []string) resp.Reply {
	if len(args) == 0 {
		return errorReply(domain.WrongArity("config"))
	}

	switch strings.ToLower(args[0]) {
	case "get":
		if len(args) != 2 {
			return errorReply(domain.WrongArity("config|get"))
		}
		value, ok := h.params.Get(args[1])
		if !ok {
			return resp.NullBulk()
		}
		return resp.Array(args[1], value)
	case "set":
		if len(args) != 3 {
			return errorReply(domain.WrongArity("config|set"))
		}
		h.params.Set(args[1], args[2])
		return resp.SimpleString("OK")
	default:
		return errorReply(domain.ErrUnknownSubcommand)
	}
}

// clientIP extracts the IP without port from a remote address.
func clientIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	s := addr.String()
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host
	}
	return s
}
