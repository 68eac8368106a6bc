package connection

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// DefaultTimeout bounds dialing and each command round trip.
const DefaultTimeout = 5 * time.Second

// ErrNoArgs is returned by Do when called without a command name.
var ErrNoArgs = errors.New("connection: empty command")

// Client is a single-connection RESP client. It is not safe for concurrent use.
type Client struct {
	addr    string
	timeout time.Duration

	conn net.Conn
	br   *bufio.Reader
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the dial and round-trip timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client for addr ("host:port"). No connection is made
// until Connect or the first Do.
func NewClient(addr string, opts ...Option) *Client {
	c := &Client{
		addr:    addr,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server if not already connected.
func (c *Client) Connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.br = nil
	return err
}

// Do sends one command and returns its reply. Server error replies are
// returned as a Reply of KindError with a nil error; a non-nil error means
// the connection failed and has been closed.
func (c *Client) Do(args ...string) (resp.Reply, error) {
	if len(args) == 0 {
		return resp.Reply{}, ErrNoArgs
	}
	if err := c.Connect(); err != nil {
		return resp.Reply{}, err
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		_ = c.Close()
		return resp.Reply{}, err
	}

	if _, err := c.conn.Write(resp.EncodeCommand(args...)); err != nil {
		_ = c.Close()
		return resp.Reply{}, fmt.Errorf("write: %w", err)
	}

	reply, err := resp.ReadReply(c.br)
	if err != nil {
		_ = c.Close()
		return resp.Reply{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
