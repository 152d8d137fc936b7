package client

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/eternalApril/lunar/internal/config"
	"go.uber.org/zap"
)

// Transport is the byte stream a client talks RESP over.
// A zero-byte read or io.EOF means the peer closed the stream
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
}

// Conn is a TCP Transport with optional per-operation deadlines
type Conn struct {
	conn         net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
}

// Dial connects to the server described by cfg
func Dial(ctx context.Context, cfg config.ClientConfig, logger *zap.Logger) (*Conn, error) {
	address := net.JoinHostPort(cfg.Host, cfg.Port)

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	c, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Addr: address, Err: err}
	}

	logger.Debug("connected", zap.String("addr", address))

	return NewConn(c, cfg, logger), nil
}

// NewConn wraps an established connection
func NewConn(c net.Conn, cfg config.ClientConfig, logger *zap.Logger) *Conn {
	return &Conn{
		conn:         c,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
	}
}

// Read reads from the connection, waiting at most the configured read timeout
func (c *Conn) Read(p []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.conn.Read(p)
}

// Write writes to the connection, waiting at most the configured write timeout
func (c *Conn) Write(p []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return c.conn.Write(p)
}

// Close terminates the underlying network connection
func (c *Conn) Close() error {
	if c.logger.Core().Enabled(zap.DebugLevel) {
		c.logger.Debug("closing connection", zap.String("addr", c.RemoteAddr()))
	}
	return c.conn.Close()
}

// RemoteAddr returns the server address
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
