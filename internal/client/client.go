package client

import (
	"context"

	"github.com/eternalApril/lunar/internal/config"
	"github.com/eternalApril/lunar/internal/resp"
	"go.uber.org/zap"
)

// Client issues commands over a single transport. Pipelines and transactions created
// from it share that transport, so a Client and everything it creates must be used
// from one goroutine at a time
type Client struct {
	transport Transport
	replies   *replyReader
	logger    *zap.Logger
}

// NewClient creates a client on an established transport
func NewClient(t Transport, readSize int, logger *zap.Logger) *Client {
	return &Client{
		transport: t,
		replies:   newReplyReader(t, readSize),
		logger:    logger,
	}
}

// Connect dials the configured server and returns a client for it
func Connect(ctx context.Context, cfg config.ClientConfig, logger *zap.Logger) (*Client, error) {
	conn, err := Dial(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewClient(conn, cfg.ReadBufferSize, logger), nil
}

// Do sends one command and waits for its reply.
// A server error reply is returned as a value, not as an error
func (c *Client) Do(name string, args ...string) (resp.Value, error) {
	p := c.Pipeline()
	p.Enqueue(name, args...)

	values, err := p.Execute()
	if err != nil {
		return resp.Value{}, err
	}
	return values[0], nil
}

// Pipeline returns an empty pipeline on the client transport
func (c *Client) Pipeline() *Pipeline {
	return newPipeline(c.transport, c.replies, c.logger)
}

// Transaction returns a transaction on the client transport
func (c *Client) Transaction() *Transaction {
	return newTransaction(c.Pipeline())
}

// Watch marks keys so that a following transaction aborts if any of them changes
func (c *Client) Watch(keys ...string) error {
	return c.status("WATCH", keys...)
}

// Unwatch forgets all watched keys
func (c *Client) Unwatch() error {
	return c.status("UNWATCH")
}

// Ping checks that the server answers
func (c *Client) Ping() error {
	return c.status("PING")
}

// status runs a command whose only interesting outcome is success or an error reply
func (c *Client) status(name string, args ...string) error {
	v, err := c.Do(name, args...)
	if err != nil {
		return err
	}
	return v.Err()
}

// Close closes the transport
func (c *Client) Close() error {
	if n := c.replies.buffered(); n > 0 {
		c.logger.Warn("closing with unread reply bytes", zap.Int("bytes", n))
	}
	return c.transport.Close()
}
